package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/session"
)

func newTestController() *Controller {
	return NewController(session.NewStore())
}

// drives a controller to OrderDetails with a city set.
func readyForSearch(t *testing.T) *Controller {
	t.Helper()
	c := newTestController()
	c.StartOrder()
	require.NoError(t, c.SubmitDraft(OrderDraft{Description: "spicy ramen"}))
	c.SetCity("Austin")
	return c
}

func TestSubmitDraftRequiresContent(t *testing.T) {
	c := newTestController()
	c.StartOrder()

	err := c.SubmitDraft(OrderDraft{Description: "   "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Missing Information", vErr.Title)
	require.Equal(t, ScreenAddPhoto, c.Screen())

	require.NoError(t, c.SubmitDraft(OrderDraft{ImagePath: "/tmp/food.jpeg"}))
	require.Equal(t, ScreenOrderDetails, c.Screen())
	require.NotEmpty(t, c.Order().TraceID)
}

func TestBeginSearchRequiresCity(t *testing.T) {
	c := newTestController()
	c.StartOrder()
	require.NoError(t, c.SubmitDraft(OrderDraft{Description: "tacos"}))

	_, err := c.BeginSearch()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.False(t, c.Store().Loading(), "a failed guard must not raise loading")

	c.SetCity("Austin")
	query, err := c.BeginSearch()
	require.NoError(t, err)
	require.True(t, c.Store().Loading())
	require.Equal(t, "Austin", query.City)
	require.Equal(t, "tacos", query.Description)
	require.NotEmpty(t, query.Date)
	require.NotEmpty(t, query.Time)
}

func TestQueryFormatsSchedule(t *testing.T) {
	c := readyForSearch(t)
	c.SetSchedule(time.Date(2024, 6, 15, 19, 30, 0, 0, time.Local))
	query, err := c.BeginSearch()
	require.NoError(t, err)
	require.Equal(t, "06/15/2024", query.Date)
	require.Equal(t, "7:30 PM", query.Time)
}

func TestCompleteSearchAdvancesAndReplaces(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)

	first := api.SearchResult{Businesses: []api.BusinessCandidate{
		{ID: "1", Name: "Noodle Bar", YelpURL: "https://yelp.test/1"},
		{ID: "2", Name: "Taco Spot"},
	}}
	require.NoError(t, c.CompleteSearch(first))
	require.Equal(t, ScreenChooseRestaurant, c.Screen())
	require.False(t, c.Store().Loading())
	require.Len(t, c.Store().Candidates(), 2)
	require.Nil(t, c.Order().Selected)

	// A later search overwrites, never appends.
	require.NoError(t, c.Select("1"))
	_, err = c.BeginSearch()
	require.NoError(t, err)
	require.NoError(t, c.CompleteSearch(api.SearchResult{Businesses: []api.BusinessCandidate{{ID: "9"}}}))
	require.Len(t, c.Store().Candidates(), 1)
	require.Nil(t, c.Order().Selected, "a new result set must drop the old selection")
}

func TestEmptySearchResultDoesNotAdvance(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)
	require.NoError(t, c.CompleteSearch(api.SearchResult{Businesses: []api.BusinessCandidate{{ID: "1"}}}))
	c.Back()
	require.Equal(t, ScreenOrderDetails, c.Screen())

	_, err = c.BeginSearch()
	require.NoError(t, err)
	err = c.CompleteSearch(api.SearchResult{})
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, ScreenOrderDetails, c.Screen(), "empty results must not advance")
	require.False(t, c.Store().Loading())
	require.Len(t, c.Store().Candidates(), 1, "empty results must keep the previous list")
}

func TestFailSearchClearsLoading(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)
	c.FailSearch(errors.New("backend down"))
	require.False(t, c.Store().Loading())
	require.Equal(t, ScreenOrderDetails, c.Screen())
}

func TestSelectRejectsUnknownID(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)
	require.NoError(t, c.CompleteSearch(api.SearchResult{Businesses: []api.BusinessCandidate{{ID: "1"}}}))

	var vErr *ValidationError
	require.ErrorAs(t, c.Select("404"), &vErr)
	require.Nil(t, c.Order().Selected)

	require.NoError(t, c.Select("1"))
	require.Equal(t, "1", c.Order().Selected.ID)
}

func TestBeginDetailsFetchGuards(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)
	require.NoError(t, c.CompleteSearch(api.SearchResult{Businesses: []api.BusinessCandidate{
		{ID: "1", YelpURL: "https://yelp.test/1"},
		{ID: "2", YelpURL: "N/A"},
	}}))

	// No selection yet.
	_, err = c.BeginDetailsFetch()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// Selection without a usable reference link.
	require.NoError(t, c.Select("2"))
	_, err = c.BeginDetailsFetch()
	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.False(t, c.Store().Loading())

	require.NoError(t, c.Select("1"))
	ref, err := c.BeginDetailsFetch()
	require.NoError(t, err)
	require.Equal(t, "https://yelp.test/1", ref)
	require.True(t, c.Store().Loading())

	details := api.BusinessDetails{BusinessID: "biz-1", Judgement: []string{"go"}}
	c.CompleteDetailsFetch(details)
	require.Equal(t, ScreenSummary, c.Screen())
	require.False(t, c.Store().Loading())
	require.Equal(t, "biz-1", c.Order().Details.BusinessID)
}

func TestLocationFixGenerations(t *testing.T) {
	c := readyForSearch(t)

	gen := c.BeginLocationFix()
	require.True(t, c.ApplyLocationFix(gen, LocationContext{City: "Dallas", Latitude: "32.7", Longitude: "-96.8"}))
	require.Equal(t, "Dallas", c.Order().Location.City)
	require.Equal(t, "32.7", c.Order().Location.Latitude)

	// Typing a city supersedes the in-flight generation.
	stale := c.BeginLocationFix()
	c.SetCity("Houston")
	require.False(t, c.ApplyLocationFix(stale, LocationContext{City: "Dallas"}))
	require.Equal(t, "Houston", c.Order().Location.City)

	// A city-only enrichment must not wipe coordinates.
	gen = c.BeginLocationFix()
	require.True(t, c.ApplyLocationFix(gen, LocationContext{City: "Austin"}))
	require.Equal(t, "Austin", c.Order().Location.City)
	require.Equal(t, "32.7", c.Order().Location.Latitude)
}

func TestBackNeverClears(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)
	require.NoError(t, c.CompleteSearch(api.SearchResult{Businesses: []api.BusinessCandidate{{ID: "1"}}}))
	require.NoError(t, c.Select("1"))

	c.Back()
	require.Equal(t, ScreenOrderDetails, c.Screen())
	require.Equal(t, "spicy ramen", c.Order().Draft.Description)
	require.NotNil(t, c.Order().Selected)
	require.Len(t, c.Store().Candidates(), 1)

	c.Back()
	c.Back()
	require.Equal(t, ScreenHome, c.Screen())
	c.Back()
	require.Equal(t, ScreenHome, c.Screen(), "Back from Home stays on Home")
}

func TestStartOrderResetsOrderOnly(t *testing.T) {
	c := readyForSearch(t)
	_, err := c.BeginSearch()
	require.NoError(t, err)
	require.NoError(t, c.CompleteSearch(api.SearchResult{Businesses: []api.BusinessCandidate{{ID: "1"}}}))

	c.StartOrder()
	require.Equal(t, ScreenAddPhoto, c.Screen())
	require.Empty(t, c.Order().Draft.Description)
	require.Empty(t, c.Order().TraceID)
	require.Len(t, c.Store().Candidates(), 1, "the store outlives individual orders")
}
