package mvg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LocationKind tags a location search result
type LocationKind int

const (
	KindUnknown LocationKind = iota
	KindStation
	KindAddress
	KindPOI
)

// String returns a human-readable name for the kind
func (k LocationKind) String() string {
	switch k {
	case KindStation:
		return "station"
	case KindAddress:
		return "address"
	case KindPOI:
		return "poi"
	default:
		return "unknown"
	}
}

// Location is one candidate returned by the location search.
// Only stations carry a GlobalID that the connection endpoint accepts.
type Location struct {
	Type           string          `json:"type"`                     // "STATION", "ADDRESS" or "POI"
	GlobalID       string          `json:"globalId,omitempty"`       // e.g. "de:09162:6"
	DivaID         int             `json:"divaId,omitempty"`         // Legacy numeric station id
	Name           string          `json:"name"`                     // Station or POI name
	Place          string          `json:"place"`                    // Town, e.g. "München"
	Street         string          `json:"street,omitempty"`         // Only set for addresses
	Latitude       float64         `json:"latitude"`                 // WGS84
	Longitude      float64         `json:"longitude"`                // WGS84
	TransportTypes []TransportType `json:"transportTypes,omitempty"` // Modes serving a station
	TariffZones    string          `json:"tariffZones,omitempty"`    // e.g. "m|1"
}

// Kind classifies the location by its type tag
func (l Location) Kind() LocationKind {
	switch strings.ToUpper(l.Type) {
	case "STATION":
		return KindStation
	case "ADDRESS":
		return KindAddress
	case "POI":
		return KindPOI
	default:
		return KindUnknown
	}
}

// String returns "Name, Place" or the street for addresses
func (l Location) String() string {
	name := l.Name
	if name == "" {
		name = l.Street
	}
	if l.Place == "" {
		return name
	}
	return name + ", " + l.Place
}

// FirstStation returns the first station candidate, skipping addresses and points of interest
func FirstStation(locations []Location) (Location, bool) {
	for _, l := range locations {
		if l.Kind() == KindStation && l.GlobalID != "" {
			return l, true
		}
	}
	return Location{}, false
}

// TransportType is the MVG product identifier used in queries and responses
type TransportType string

const (
	TransportUbahn       TransportType = "UBAHN"
	TransportSbahn       TransportType = "SBAHN"
	TransportTram        TransportType = "TRAM"
	TransportBus         TransportType = "BUS"
	TransportRegionalBus TransportType = "REGIONAL_BUS"
	TransportRufTaxi     TransportType = "RUFTAXI"
	TransportFootway     TransportType = "PEDESTRIAN"
)

// ConnectionQuery carries the parameters of an itinerary search
type ConnectionQuery struct {
	OriginID       string          // Station global id of the origin
	DestinationID  string          // Station global id of the destination
	When           time.Time       // Departure (or arrival) instant
	Arrival        bool            // When is the latest arrival rather than the earliest departure
	TransportTypes []TransportType // Empty means every mode
}

// Connection is one complete journey option, composed of ordered legs
type Connection struct {
	UniqueID             int64                `json:"uniqueId"`
	Parts                []ConnectionPart     `json:"parts"`
	TicketingInformation TicketingInformation `json:"ticketingInformation"`
}

// Origin returns the first stop of the journey
func (c Connection) Origin() Stop {
	if len(c.Parts) == 0 {
		return Stop{}
	}
	return c.Parts[0].From
}

// Destination returns the last stop of the journey
func (c Connection) Destination() Stop {
	if len(c.Parts) == 0 {
		return Stop{}
	}
	return c.Parts[len(c.Parts)-1].To
}

// Duration returns the planned door-to-door travel time
func (c Connection) Duration() time.Duration {
	if len(c.Parts) == 0 {
		return 0
	}
	return c.Destination().PlannedDeparture.Sub(c.Origin().PlannedDeparture)
}

// ConnectionPart is a single leg: one vehicle ride or a walk
type ConnectionPart struct {
	From              Stop     `json:"from"`
	To                Stop     `json:"to"`
	IntermediateStops []Stop   `json:"intermediateStops"`
	NoChangeRequired  bool     `json:"noChangeRequired"`
	Line              Line     `json:"line"`
	ExitLetter        string   `json:"exitLetter,omitempty"`
	Distance          float64  `json:"distance,omitempty"`
	Occupancy         string   `json:"occupancy,omitempty"`
	Messages          []string `json:"messages"`
}

// IsWalk reports whether the leg is a footpath rather than a vehicle ride
func (p ConnectionPart) IsWalk() bool {
	return p.Line.Label == "FOOTWAY" || p.Line.TransportType == TransportFootway
}

// Stop is a timed halt within a leg
type Stop struct {
	Name                    string          `json:"name"`
	Place                   string          `json:"place"`
	StationGlobalID         string          `json:"stationGlobalId"`
	Platform                int             `json:"platform,omitempty"`
	PlannedDeparture        time.Time       `json:"plannedDeparture"`
	DepartureDelayInMinutes *int            `json:"departureDelayInMinutes,omitempty"`
	ArrivalDelayInMinutes   *int            `json:"arrivalDelayInMinutes,omitempty"`
	TransportTypes          []TransportType `json:"transportTypes,omitempty"`
}

// DepartureDelay returns the departure delay in minutes, zero when unknown
func (s Stop) DepartureDelay() int {
	if s.DepartureDelayInMinutes == nil {
		return 0
	}
	return *s.DepartureDelayInMinutes
}

// Line describes the vehicle serving a leg
type Line struct {
	Label         string        `json:"label"`
	TransportType TransportType `json:"transportType"`
	Destination   string        `json:"destination"`
	TrainType     string        `json:"trainType,omitempty"`
	Network       string        `json:"network,omitempty"`
	Sev           bool          `json:"sev"`
}

// TicketingInformation lists the tariff zones crossed by a connection
type TicketingInformation struct {
	Zones            []int    `json:"zones"`
	AlternativeZones []int    `json:"alternativeZones"`
	UnifiedTicketIDs []string `json:"unifiedTicketIds"`
}

// Millis is a point in time encoded as milliseconds since the Unix epoch
type Millis struct {
	time.Time
}

// UnmarshalJSON accepts a JSON number of epoch milliseconds or null
func (m *Millis) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		m.Time = time.Time{}
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid epoch milliseconds %q: %w", s, err)
	}
	m.Time = time.UnixMilli(ms)
	return nil
}

// MarshalJSON encodes the time as epoch milliseconds
func (m Millis) MarshalJSON() ([]byte, error) {
	if m.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(m.Time.UnixMilli(), 10)), nil
}

// Departure is one upcoming departure at a station
type Departure struct {
	PlannedDepartureTime  Millis        `json:"plannedDepartureTime"`
	RealtimeDepartureTime Millis        `json:"realtimeDepartureTime"`
	Realtime              bool          `json:"realtime"`
	DelayInMinutes        int           `json:"delayInMinutes"`
	TransportType         TransportType `json:"transportType"`
	Label                 string        `json:"label"`
	Destination           string        `json:"destination"`
	Cancelled             bool          `json:"cancelled"`
	Sev                   bool          `json:"sev"`
	Platform              int           `json:"platform"`
	Messages              []string      `json:"messages"`
}

// Notification is a service disruption or information ticker entry
type Notification struct {
	ID               string             `json:"id"`
	Type             string             `json:"type"`
	Title            string             `json:"title"`
	Text             string             `json:"text"`
	Lines            []NotificationLine `json:"lines"`
	Incidents        []string           `json:"incidents"`
	ActiveDuration   ActiveDuration     `json:"activeDuration"`
	ModificationDate string             `json:"modificationDate"`
}

// NotificationLine is a line affected by a notification
type NotificationLine struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TypeOfTransport string `json:"typeOfTransport"`
	Direction       string `json:"direction"`
}

// ActiveDuration is the period in which a notification applies
type ActiveDuration struct {
	FromDate time.Time  `json:"fromDate"`
	ToDate   *time.Time `json:"toDate,omitempty"`
}

// LineNames returns the affected line names, deduplicated, in order of appearance
func (n Notification) LineNames() []string {
	seen := make(map[string]bool, len(n.Lines))
	var names []string
	for _, l := range n.Lines {
		if l.Name == "" || seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		names = append(names, l.Name)
	}
	return names
}
