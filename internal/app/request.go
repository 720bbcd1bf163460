package app

import (
	"time"

	"github.com/muurk/mvg/internal/mvg"
)

// Modes holds the transport-mode filters of a search
type Modes struct {
	Ubahn bool
	Sbahn bool
	Tram  bool
	Bus   bool
}

// AllModes enables every transport mode
func AllModes() Modes {
	return Modes{Ubahn: true, Sbahn: true, Tram: true, Bus: true}
}

// TransportTypes converts the filters to the identifiers the connection endpoint expects
func (m Modes) TransportTypes() []mvg.TransportType {
	var types []mvg.TransportType
	if m.Ubahn {
		types = append(types, mvg.TransportUbahn)
	}
	if m.Bus {
		types = append(types, mvg.TransportBus)
	}
	if m.Tram {
		types = append(types, mvg.TransportTram)
	}
	if m.Sbahn {
		types = append(types, mvg.TransportSbahn)
	}
	return types
}

// Request is one route search handed from the render loop to the fetch coordinator.
// It carries committed values only, never drafts.
type Request struct {
	Start       string
	Destination string
	When        time.Time
	Arrival     bool
	Modes       Modes
}

// Query builds the connection query once both names have been resolved to station ids
func (r Request) Query(originID, destinationID string) mvg.ConnectionQuery {
	return mvg.ConnectionQuery{
		OriginID:       originID,
		DestinationID:  destinationID,
		When:           r.When,
		Arrival:        r.Arrival,
		TransportTypes: r.Modes.TransportTypes(),
	}
}
