package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/mvg/internal/app"
	"github.com/muurk/mvg/internal/fetch"
	"github.com/muurk/mvg/internal/mvg"
	"github.com/muurk/mvg/internal/tui"
	"github.com/muurk/mvg/internal/ui"
	"github.com/muurk/mvg/internal/urls"
)

// errReported means the failure was already printed as a result box
var errReported = errors.New("failed")

// Route search flags
var (
	routeFrom    string
	routeTo      string
	routeDate    string
	routeTime    string
	routeArrival bool
	routeDetails bool
	noUbahn      bool
	noSbahn      bool
	noTram       bool
	noBus        bool
)

// Departure and ticker flags
var (
	departureLimit int
	tickerLine     string
)

func init() {
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(departuresCmd)
	rootCmd.AddCommand(notificationsCmd)
}

// routesCmd runs one route search without the interactive planner
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Search connections between two stations",
	Long: `Search connections between two stations and print them as a table.

Station names are resolved the same way as in the planner: the first station
the MVG location search returns is used. Date and time default to now.`,
	Example: `  # Next connections from Dachau to the main station
  mvg routes --from Dachau --to Hauptbahnhof

  # Arrive by 08:30 on a given day, no buses
  mvg routes --from Pasing --to Garching --date 15.03.2024 --time 08:30 --arrival --no-bus

  # Show every stop along the way
  mvg routes --from Marienplatz --to Fröttmaning --details`,
	RunE: runRoutes,
}

func init() {
	routesCmd.Flags().StringVar(&routeFrom, "from", "", "Start station")
	routesCmd.Flags().StringVar(&routeTo, "to", "", "Destination station")
	routesCmd.Flags().StringVar(&routeDate, "date", "", "Travel date (DD.MM.YYYY, default today)")
	routesCmd.Flags().StringVar(&routeTime, "time", "", "Travel time (HH:MM, default now)")
	routesCmd.Flags().BoolVar(&routeArrival, "arrival", false, "Treat date and time as the latest arrival")
	routesCmd.Flags().BoolVar(&routeDetails, "details", false, "Print the stops of every connection")
	routesCmd.Flags().BoolVar(&noUbahn, "no-ubahn", false, "Exclude U-Bahn")
	routesCmd.Flags().BoolVar(&noSbahn, "no-sbahn", false, "Exclude S-Bahn")
	routesCmd.Flags().BoolVar(&noTram, "no-tram", false, "Exclude tram")
	routesCmd.Flags().BoolVar(&noBus, "no-bus", false, "Exclude bus")
	_ = routesCmd.MarkFlagRequired("from")
	_ = routesCmd.MarkFlagRequired("to")
}

func runRoutes(cmd *cobra.Command, args []string) error {
	if err := initLogging(false); err != nil {
		return err
	}

	now := time.Now()
	when, err := parseWhen(now, routeDate, routeTime)
	if err != nil {
		return err
	}

	defaults := sessionDefaults()
	arrival := defaults.Arrival || routeArrival
	modes := app.Modes{
		Ubahn: defaults.Modes.Ubahn && !noUbahn,
		Sbahn: defaults.Modes.Sbahn && !noSbahn,
		Tram:  defaults.Modes.Tram && !noTram,
		Bus:   defaults.Modes.Bus && !noBus,
	}

	req := app.Request{
		Start:       routeFrom,
		Destination: routeTo,
		When:        when,
		Arrival:     arrival,
		Modes:       modes,
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Routes", "mvg "+strings.Join(argsOf(cmd), " "),
		ui.Param{Key: "From", Value: req.Start},
		ui.Param{Key: "To", Value: req.Destination},
		ui.Param{Key: searchLabel(req.Arrival), Value: req.When.Format(app.DateLayout + " " + app.TimeLayout)},
		ui.Param{Key: "Modes", Value: modeSummary(req.Modes)},
	)

	coordinator := fetch.New(newClient(), nil, nil)
	coordinator.RequestTimeout = cfg.API.RequestTimeout

	conns, err := coordinator.Plan(cmd.Context(), req)
	if err != nil {
		return reportFailure(p, "Route search failed", err)
	}

	rows := make([][]string, len(conns))
	for i, c := range conns {
		rows[i] = tui.RouteRow(c, now)
	}
	p.PrintTable(tui.RouteColumns, rows, "No connections found")

	if routeDetails {
		for i, c := range conns {
			p.Newline()
			p.Println(ui.HeaderParamKeyStyle.Render(fmt.Sprintf("#%d  %s", i+1, tui.FormatSpan(c))))
			for _, line := range tui.DetailLines(c) {
				p.Println("  " + line)
			}
		}
	}
	return nil
}

// departuresCmd lists the next departures at one station
var departuresCmd = &cobra.Command{
	Use:   "departures <station>",
	Short: "Show upcoming departures at a station",
	Example: `  mvg departures Marienplatz
  mvg departures Sendlinger Tor --limit 20`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDepartures,
}

func init() {
	departuresCmd.Flags().IntVar(&departureLimit, "limit", 10, "Maximum number of departures (0 = all)")
}

func runDepartures(cmd *cobra.Command, args []string) error {
	if err := initLogging(false); err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	client := newClient()
	coordinator := fetch.New(client, nil, nil)

	ctx, cancel := withTimeout(cmd, cfg.API.RequestTimeout)
	defer cancel()

	station, err := coordinator.Resolve(ctx, "Station", strings.Join(args, " "))
	if err != nil {
		return reportFailure(p, "Station lookup failed", err)
	}

	departures, err := client.Departures(ctx, station.GlobalID)
	if err != nil {
		return reportFailure(p, "Departure query failed", err)
	}
	if departureLimit > 0 && len(departures) > departureLimit {
		departures = departures[:departureLimit]
	}

	p.PrintHeader("Departures", "mvg "+strings.Join(argsOf(cmd), " "),
		ui.Param{Key: "Station", Value: station.String()},
	)

	now := time.Now()
	rows := make([][]string, len(departures))
	for i, d := range departures {
		rows[i] = tui.DepartureRow(d, now)
	}
	p.PrintTable(tui.DepartureColumns, rows, "No departures")
	return nil
}

// notificationsCmd prints the current service disruption tickers
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"tickers"},
	Short:   "Show current service disruptions",
	Example: `  mvg notifications
  mvg notifications --line S2`,
	RunE: runNotifications,
}

func init() {
	notificationsCmd.Flags().StringVar(&tickerLine, "line", "", "Only show tickers affecting this line (e.g. U3, S2)")
}

func runNotifications(cmd *cobra.Command, args []string) error {
	if err := initLogging(false); err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())

	ctx, cancel := withTimeout(cmd, cfg.API.RequestTimeout)
	defer cancel()

	tickers, err := newClient().Notifications(ctx)
	if err != nil {
		return reportFailure(p, "Ticker query failed", err)
	}

	var rows [][]string
	for _, n := range filterByLine(tickers, tickerLine) {
		rows = append(rows, tui.NotificationRow(n))
	}

	params := []ui.Param{{Key: "Source", Value: cfg.API.BaseURL}}
	if tickerLine != "" {
		params = append(params, ui.Param{Key: "Line", Value: tickerLine})
	}
	p.PrintHeader("Service Tickers", "mvg "+strings.Join(argsOf(cmd), " "), params...)
	p.PrintTable(tui.NotificationColumns, rows, "No disruptions reported")
	return nil
}

// parseWhen applies optional date and time strings to now, the way the planner commits them.
// A date keeps the time of day; a time keeps the day and zeroes the seconds.
func parseWhen(now time.Time, date, clock string) (time.Time, error) {
	when := now
	if date != "" {
		d, err := time.ParseInLocation(app.DateLayout, date, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (want DD.MM.YYYY)", date)
		}
		when = time.Date(d.Year(), d.Month(), d.Day(),
			when.Hour(), when.Minute(), when.Second(), when.Nanosecond(), now.Location())
	}
	if clock != "" {
		t, err := time.ParseInLocation(app.TimeLayout, clock, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --time %q (want HH:MM)", clock)
		}
		when = time.Date(when.Year(), when.Month(), when.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	}
	return when, nil
}

// filterByLine keeps tickers that name line; an empty line keeps all
func filterByLine(tickers []mvg.Notification, line string) []mvg.Notification {
	if line == "" {
		return tickers
	}
	var out []mvg.Notification
	for _, n := range tickers {
		for _, name := range n.LineNames() {
			if strings.EqualFold(name, line) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

func searchLabel(arrival bool) string {
	if arrival {
		return "Arrive by"
	}
	return "Depart at"
}

func modeSummary(m app.Modes) string {
	var on []string
	for _, t := range m.TransportTypes() {
		on = append(on, string(t))
	}
	if len(on) == 0 {
		return "all (none selected)"
	}
	return strings.Join(on, ", ")
}

// reportFailure prints err as a failure box with troubleshooting tips
func reportFailure(p *ui.Printer, title string, err error) error {
	p.PrintError(title, err, failureTips(err))
	return errReported
}

// failureTips picks the troubleshooting lines and links that fit err
func failureTips(err error) []string {
	if fetch.IsResolutionError(err) {
		return []string{
			"Check the spelling of the station name",
			"Addresses and points of interest are not accepted, use a station",
		}
	}

	tips := ui.TipsFromHint(mvg.TroubleshootingHint(err))
	if mvg.IsNetworkError(err) || mvg.IsHTTPError(err) {
		tips = append(tips, "Current disruptions: "+urls.ServiceStatus)
	}
	if mvg.IsHTTPError(err) || mvg.IsParseError(err) {
		tips = append(tips, "Web journey planner: "+urls.JourneyPlanner)
	}
	return tips
}

func argsOf(cmd *cobra.Command) []string {
	return append([]string{cmd.Name()}, cmd.Flags().Args()...)
}
