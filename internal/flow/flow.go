// Package flow is the order flow state machine: the five screens, the data
// each one contributes, and the guards between them. It is headless — the TUI
// renders it, tests drive it directly.
package flow

import (
	"strings"
	"time"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
)

// Screen identifies one step of the linear order flow.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenAddPhoto
	ScreenOrderDetails
	ScreenChooseRestaurant
	ScreenSummary
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenAddPhoto:
		return "Add Photo"
	case ScreenOrderDetails:
		return "Order Details"
	case ScreenChooseRestaurant:
		return "Choose Restaurant"
	case ScreenSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// OrderDraft is what the AddPhoto screen contributes: a description, an image
// on disk, or both. It is copied forward and never mutated afterwards.
type OrderDraft struct {
	Description string
	ImagePath   string
}

// Empty reports whether the draft carries neither a description nor an image.
func (d OrderDraft) Empty() bool {
	return strings.TrimSpace(d.Description) == "" && strings.TrimSpace(d.ImagePath) == ""
}

// LocationContext is where the user wants to eat. City is mandatory before a
// search; coordinates are optional enrichment from the location provider.
type LocationContext struct {
	City      string
	Latitude  string
	Longitude string
}

// ScheduleContext is when. Defaults to now, no past/future validation.
type ScheduleContext struct {
	When time.Time
}

// Order is the session value threaded through the flow. Everything a screen
// hands to the next lives here rather than in ad-hoc navigation parameters.
type Order struct {
	TraceID  string
	Draft    OrderDraft
	Location LocationContext
	Schedule ScheduleContext
	Selected *api.BusinessCandidate
	Details  *api.BusinessDetails
}

// Query assembles the search submission from the order's current state.
func (o Order) Query() api.SearchQuery {
	return api.SearchQuery{
		Description: o.Draft.Description,
		ImagePath:   o.Draft.ImagePath,
		City:        o.Location.City,
		Latitude:    o.Location.Latitude,
		Longitude:   o.Location.Longitude,
		Date:        o.Schedule.When.Format("01/02/2006"),
		Time:        o.Schedule.When.Format("3:04 PM"),
	}
}
