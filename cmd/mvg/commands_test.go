package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muurk/mvg/internal/app"
	"github.com/muurk/mvg/internal/fetch"
	"github.com/muurk/mvg/internal/mvg"
	"github.com/muurk/mvg/internal/urls"
)

const stationsJSON = `[{"type":"STATION","globalId":"de:09174:6800","name":"Dachau Bahnhof","place":"Dachau"}]`

const connectionsJSON = `[{
  "uniqueId": 1,
  "parts": [{
    "from": {"name":"Dachau Bahnhof","plannedDeparture":"2030-06-01T10:05:00+02:00"},
    "to": {"name":"Hauptbahnhof","plannedDeparture":"2030-06-01T10:26:00+02:00"},
    "intermediateStops": [{"name":"Laim","plannedDeparture":"2030-06-01T10:18:00+02:00"}],
    "line": {"label":"S2","transportType":"SBAHN"},
    "messages": []
  }]
}]`

const departuresJSON = `[
  {"plannedDepartureTime":1906272300000,"label":"S2","destination":"Erding","transportType":"SBAHN"},
  {"plannedDepartureTime":1906272600000,"label":"726","destination":"Dachau Ost","transportType":"BUS"}
]`

const tickersJSON = `[
  {"id":"1","title":"Stellwerksstörung","lines":[{"name":"S2"}],"activeDuration":{"fromDate":"2030-06-01T06:00:00+02:00"}},
  {"id":"2","title":"Aufzug außer Betrieb","lines":[{"name":"U3"}]}
]`

// execute runs the root command against an API served by handler
func execute(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", configFile, "--base-url", server.URL))
	err := rootCmd.Execute()
	return out.String(), err
}

func mockAPI(locations string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/fib/v2/location":
			_, _ = w.Write([]byte(locations))
		case "/api/fib/v2/connection":
			_, _ = w.Write([]byte(connectionsJSON))
		case "/api/fib/v2/departure":
			_, _ = w.Write([]byte(departuresJSON))
		case "/api/ems/tickers":
			_, _ = w.Write([]byte(tickersJSON))
		default:
			http.NotFound(w, r)
		}
	}
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, mockAPI(stationsJSON),
		"routes", "--from", "Dachau", "--to", "Hauptbahnhof", "--details",
		"--date", "", "--time", "")
	if err != nil {
		t.Fatalf("routes: %v\n%s", err, out)
	}
	for _, want := range []string{"ROUTES", "TIME", "S2", "Laim"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRoutesUnresolvedStation(t *testing.T) {
	out, err := execute(t, mockAPI(`[]`),
		"routes", "--from", "Nowhere", "--to", "Hauptbahnhof", "--details=false",
		"--date", "", "--time", "")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(out, "FAILED") || !strings.Contains(out, "no station found") {
		t.Errorf("output missing failure box:\n%s", out)
	}
}

func TestRoutesRejectsBadDate(t *testing.T) {
	_, err := execute(t, mockAPI(stationsJSON),
		"routes", "--from", "Dachau", "--to", "Hauptbahnhof", "--details=false",
		"--date", "31.02.2024", "--time", "")
	if err == nil || !strings.Contains(err.Error(), "--date") {
		t.Errorf("err = %v, want --date error", err)
	}
}

func TestDeparturesCommand(t *testing.T) {
	out, err := execute(t, mockAPI(stationsJSON), "departures", "Dachau", "--limit", "1")
	if err != nil {
		t.Fatalf("departures: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Erding") {
		t.Errorf("output missing first departure:\n%s", out)
	}
	if strings.Contains(out, "Dachau Ost") {
		t.Errorf("--limit 1 printed a second departure:\n%s", out)
	}
}

func TestNotificationsCommand(t *testing.T) {
	out, err := execute(t, mockAPI(stationsJSON), "notifications", "--line", "s2")
	if err != nil {
		t.Fatalf("notifications: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Stellwerksstörung") || strings.Contains(out, "Aufzug") {
		t.Errorf("line filter not applied:\n%s", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--force", "--config", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out.Reset()
	rootCmd.SetArgs([]string{"config", "show", "--config", path, "--base-url", "http://127.0.0.1:9"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "base_url: http://127.0.0.1:9") {
		t.Errorf("flag override not shown:\n%s", out.String())
	}
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2024, 3, 15, 8, 30, 45, 0, time.Local)

	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{name: "now", want: now},
		{name: "date keeps time of day", date: "01.04.2024", want: time.Date(2024, 4, 1, 8, 30, 45, 0, time.Local)},
		{name: "time zeroes seconds", clock: "17:05", want: time.Date(2024, 3, 15, 17, 5, 0, 0, time.Local)},
		{name: "both", date: "24.12.2024", clock: "23:59", want: time.Date(2024, 12, 24, 23, 59, 0, 0, time.Local)},
		{name: "impossible date", date: "31.02.2024", wantErr: true},
		{name: "bad time", clock: "25:00", wantErr: true},
		{name: "wrong layout", date: "2024-03-15", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWhen(now, tt.date, tt.clock)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseWhen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModeSummary(t *testing.T) {
	if got := modeSummary(app.AllModes()); got != "UBAHN, BUS, TRAM, SBAHN" {
		t.Errorf("modeSummary(all) = %q", got)
	}
	if got := modeSummary(app.Modes{}); got != "all (none selected)" {
		t.Errorf("modeSummary(none) = %q", got)
	}
}

func TestFilterByLine(t *testing.T) {
	tickers := []mvg.Notification{
		{Title: "a", Lines: []mvg.NotificationLine{{Name: "U3"}}},
		{Title: "b", Lines: []mvg.NotificationLine{{Name: "S2"}, {Name: "U3"}}},
	}
	if got := filterByLine(tickers, ""); len(got) != 2 {
		t.Errorf("empty filter kept %d, want 2", len(got))
	}
	if got := filterByLine(tickers, "s2"); len(got) != 1 || got[0].Title != "b" {
		t.Errorf("filter s2 = %+v", got)
	}
}

func TestFailureTips(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		status, planner bool
	}{
		{"resolution", &fetch.ResolutionError{Field: "Start", Query: "Atlantis"}, false, false},
		{"network", mvg.NewNetworkError("GET failed", "/x", errors.New("reset")), true, false},
		{"http", mvg.NewHTTPError(503, "/x", "down"), true, true},
		{"parse", mvg.NewParseError("bad json", "/x", errors.New("unexpected EOF")), false, true},
		{"plain", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := strings.Join(failureTips(tt.err), "\n")
			if got := strings.Contains(tips, urls.ServiceStatus); got != tt.status {
				t.Errorf("service status link = %v, want %v in %q", got, tt.status, tips)
			}
			if got := strings.Contains(tips, urls.JourneyPlanner); got != tt.planner {
				t.Errorf("journey planner link = %v, want %v in %q", got, tt.planner, tips)
			}
		})
	}
}

func TestPlannerNeedsTerminal(t *testing.T) {
	_, err := execute(t, mockAPI(stationsJSON))
	if !errors.Is(err, ErrNoTerminal) {
		t.Errorf("err = %v, want ErrNoTerminal", err)
	}
}
