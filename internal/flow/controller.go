package flow

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/session"
)

// Controller drives the forward-only screen sequence. Remote calls are split
// into Begin/Complete/Fail pairs so the UI can run the network leg
// asynchronously while all state changes stay on the update loop; the loading
// flag is raised by every Begin and released on every exit path.
type Controller struct {
	screen Screen
	order  Order
	store  *session.Store
}

func NewController(store *session.Store) *Controller {
	return &Controller{screen: ScreenHome, store: store}
}

func (c *Controller) Screen() Screen { return c.screen }

// Order returns the current session value. The pointers inside refer to
// immutable data; callers must not mutate through them.
func (c *Controller) Order() Order { return c.order }

func (c *Controller) Store() *session.Store { return c.store }

// StartOrder begins a fresh order from Home. The previous search's candidate
// list stays in the store until the next completed search overwrites it.
func (c *Controller) StartOrder() {
	c.order = Order{Schedule: ScheduleContext{When: time.Now()}}
	c.screen = ScreenAddPhoto
}

// SubmitDraft moves AddPhoto → OrderDetails. At least one of description or
// image must be present.
func (c *Controller) SubmitDraft(draft OrderDraft) error {
	if draft.Empty() {
		return &ValidationError{
			Title:  "Missing Information",
			Reason: "Please provide a description or upload an image to continue.",
		}
	}
	c.order.Draft = draft
	c.order.TraceID = uuid.NewString()
	if c.order.Schedule.When.IsZero() {
		c.order.Schedule.When = time.Now()
	}
	c.screen = ScreenOrderDetails
	return nil
}

// SetCity records a manually entered city. Typing a city makes any in-flight
// location fix stale.
func (c *Controller) SetCity(city string) {
	c.order.Location.City = strings.TrimSpace(city)
	c.store.InvalidateLocationFixes()
}

func (c *Controller) SetSchedule(when time.Time) {
	c.order.Schedule.When = when
}

// BeginLocationFix starts an asynchronous location lookup and returns its
// generation token.
func (c *Controller) BeginLocationFix() uint64 {
	return c.store.BeginLocationFix()
}

// ApplyLocationFix writes a resolved fix unless it has been superseded.
// Last write wins; stale generations are dropped.
func (c *Controller) ApplyLocationFix(gen uint64, loc LocationContext) bool {
	if !c.store.AcceptLocationFix(gen) {
		return false
	}
	if city := strings.TrimSpace(loc.City); city != "" {
		c.order.Location.City = city
	}
	if loc.Latitude != "" {
		c.order.Location.Latitude = loc.Latitude
	}
	if loc.Longitude != "" {
		c.order.Location.Longitude = loc.Longitude
	}
	return true
}

// BeginSearch validates the order and raises the loading flag, returning the
// composed query for the caller to submit. The caller must follow up with
// CompleteSearch or FailSearch.
func (c *Controller) BeginSearch() (api.SearchQuery, error) {
	if strings.TrimSpace(c.order.Location.City) == "" {
		return api.SearchQuery{}, &ValidationError{
			Title:  "Missing Information",
			Reason: "Please provide your current location or enter a city",
		}
	}
	if c.order.Schedule.When.IsZero() {
		c.order.Schedule.When = time.Now()
	}
	c.store.BeginSearch()
	return c.order.Query(), nil
}

// CompleteSearch applies a search response. A non-empty candidate list
// replaces the store's list wholesale and advances to ChooseRestaurant; an
// empty one leaves every piece of state where it was.
func (c *Controller) CompleteSearch(result api.SearchResult) error {
	if len(result.Businesses) == 0 {
		err := &api.RequestError{
			Op:      "search",
			Message: "We could not find any restaurants matching that description.",
		}
		c.store.Fail(err)
		return err
	}
	c.store.CompleteSearch(result.Businesses)
	c.order.Selected = nil
	c.order.Details = nil
	c.screen = ScreenChooseRestaurant
	return nil
}

func (c *Controller) FailSearch(err error) {
	c.store.Fail(err)
}

// Select marks a candidate by id. Selecting an id that is not in the current
// list is rejected rather than stored, so a confirm can never index a
// nonexistent candidate.
func (c *Controller) Select(id string) error {
	candidate, ok := c.store.CandidateByID(id)
	if !ok {
		return &ValidationError{
			Title:  "Error",
			Reason: "That restaurant is no longer in the list.",
		}
	}
	c.order.Selected = &candidate
	return nil
}

// BeginDetailsFetch validates the selection and raises the loading flag,
// returning the candidate's reference URL for the analysis call.
func (c *Controller) BeginDetailsFetch() (string, error) {
	if c.order.Selected == nil {
		return "", &ValidationError{
			Title:  "No Selection",
			Reason: "Please choose a restaurant first.",
		}
	}
	ref := strings.TrimSpace(c.order.Selected.YelpURL)
	if ref == "" || ref == "N/A" {
		return "", &api.RequestError{
			Op:      "analyze",
			Message: "This restaurant has no reference link to analyze.",
		}
	}
	c.store.BeginSearch()
	return ref, nil
}

// CompleteDetailsFetch stores the analysis and advances to Summary.
func (c *Controller) CompleteDetailsFetch(details api.BusinessDetails) {
	c.store.Settle()
	c.order.Details = &details
	c.screen = ScreenSummary
}

func (c *Controller) FailDetailsFetch(err error) {
	c.store.Fail(err)
}

// Back steps one screen backwards. Nothing is rolled back or cleared: the
// store and the order keep whatever they accumulated.
func (c *Controller) Back() {
	switch c.screen {
	case ScreenAddPhoto:
		c.screen = ScreenHome
	case ScreenOrderDetails:
		c.screen = ScreenAddPhoto
	case ScreenChooseRestaurant:
		c.screen = ScreenOrderDetails
	case ScreenSummary:
		c.screen = ScreenChooseRestaurant
	}
}
