package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/flow"
)

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "enter":
		a.ctrl.StartOrder()
		a.focus = 0
		a.descInput.Focus()
		a.imageInput.Blur()
		a.statusMsg = "Describe your food or attach a photo"
		a.logbook.Info("New order started")
	}
	return a, nil
}

func (a *App) updateAddPhoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		a.focus = (a.focus + 1) % 2
		if a.focus == 0 {
			a.descInput.Focus()
			a.imageInput.Blur()
		} else {
			a.descInput.Blur()
			a.imageInput.Focus()
		}
		return a, nil

	case "enter":
		draft := flow.OrderDraft{
			Description: strings.TrimSpace(a.descInput.Value()),
			ImagePath:   strings.TrimSpace(a.imageInput.Value()),
		}
		if draft.ImagePath != "" {
			if err := fileReadable(draft.ImagePath); err != nil {
				a.surfaceError(err)
				return a, nil
			}
		}
		if err := a.ctrl.SubmitDraft(draft); err != nil {
			a.surfaceError(err)
			return a, nil
		}
		a.enterOrderDetails()
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == 0 {
		a.descInput, cmd = a.descInput.Update(msg)
	} else {
		a.imageInput, cmd = a.imageInput.Update(msg)
	}
	return a, cmd
}

// enterOrderDetails prepares the location/schedule inputs when the draft
// guard passes.
func (a *App) enterOrderDetails() {
	when := a.ctrl.Order().Schedule.When
	a.dateInput.SetValue(when.Format(dateLayout))
	a.timeInput.SetValue(when.Format(timeLayout))
	a.focus = 0
	a.cityInput.Focus()
	a.dateInput.Blur()
	a.timeInput.Blur()
	a.statusMsg = "Where and when? ctrl+l uses your current location"
}

func (a *App) updateOrderDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := []*textinput.Model{&a.cityInput, &a.dateInput, &a.timeInput}

	switch msg.String() {
	case "tab", "shift+tab":
		inputs[a.focus].Blur()
		a.focus = (a.focus + 1) % len(inputs)
		inputs[a.focus].Focus()
		return a, nil

	case "ctrl+l":
		gen := a.ctrl.BeginLocationFix()
		a.store.BeginSearch()
		a.statusMsg = "Locating..."
		return a, a.locateCmd(gen)

	case "enter":
		// Commit whatever is in the field, including a city prefilled from
		// preferences that the user never touched.
		a.ctrl.SetCity(a.cityInput.Value())
		when, err := parseSchedule(a.dateInput.Value(), a.timeInput.Value(), a.ctrl.Order().Schedule.When)
		if err != nil {
			a.surfaceError(err)
			return a, nil
		}
		a.ctrl.SetSchedule(when)
		query, err := a.ctrl.BeginSearch()
		if err != nil {
			a.surfaceError(err)
			return a, nil
		}
		order := a.ctrl.Order()
		a.logbook.Trace(order.TraceID, "Search submitted · city=%s image=%t", order.Location.City, query.HasImage())
		a.statusMsg = "Searching restaurants..."
		return a, a.searchCmd(query)
	}

	before := inputs[a.focus].Value()
	var cmd tea.Cmd
	*inputs[a.focus], cmd = inputs[a.focus].Update(msg)
	if a.focus == 0 && inputs[0].Value() != before {
		// Typing a city supersedes any in-flight location fix.
		a.ctrl.SetCity(inputs[0].Value())
	}
	return a, cmd
}

func (a *App) updateChooseRestaurant(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := a.picker.SelectedItem().(candidateItem)
		if !ok {
			a.showAlert("No Selection", "Please choose a restaurant first.")
			return a, nil
		}
		if err := a.ctrl.Select(item.c.ID); err != nil {
			a.surfaceError(err)
			return a, nil
		}
		ref, err := a.ctrl.BeginDetailsFetch()
		if err != nil {
			a.surfaceError(err)
			return a, nil
		}
		a.logbook.Trace(a.ctrl.Order().TraceID, "Analyzing %s", item.c.Name)
		a.statusMsg = "Fetching the review digest..."
		return a, a.detailsCmd(ref)
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a *App) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		return a, a.openCmd("tel:" + a.config.DialNumber())

	case "o", "enter":
		order := a.ctrl.Order()
		url := ""
		if order.Details != nil {
			url = strings.TrimSpace(order.Details.Business.URL)
		}
		if url == "" || url == "N/A" {
			a.showAlert("Unavailable", "No order link available for this restaurant.")
			return a, nil
		}
		return a, a.openCmd(url)

	case "n":
		a.ctrl.StartOrder()
		a.descInput.SetValue("")
		a.imageInput.SetValue("")
		a.focus = 0
		a.descInput.Focus()
		a.imageInput.Blur()
		a.statusMsg = "Describe your food or attach a photo"
		return a, nil
	}
	return a, nil
}

func (a *App) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	order := a.ctrl.Order()
	if msg.err != nil {
		a.ctrl.FailSearch(msg.err)
		a.logbook.Trace(order.TraceID, "Search failed: %v", msg.err)
		a.surfaceError(msg.err)
		return a, nil
	}
	if err := a.ctrl.CompleteSearch(msg.result); err != nil {
		a.logbook.Trace(order.TraceID, "Search returned no candidates")
		a.showAlert("No Results", "We could not find any restaurants matching that description.")
		return a, nil
	}

	candidates := a.store.Candidates()
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = candidateItem{c: c}
	}
	a.picker.SetItems(items)
	a.picker.Select(0)
	a.logbook.Trace(order.TraceID, "Search returned %d candidates", len(candidates))
	a.statusMsg = fmt.Sprintf("Found %d restaurants", len(candidates))
	return a, nil
}

func (a *App) handleDetailsResult(msg detailsResultMsg) (tea.Model, tea.Cmd) {
	order := a.ctrl.Order()
	if msg.err != nil {
		a.ctrl.FailDetailsFetch(msg.err)
		a.logbook.Trace(order.TraceID, "Analysis failed: %v", msg.err)
		a.showAlert("Error", "Failed to load restaurant details. Please try again.")
		return a, nil
	}
	a.ctrl.CompleteDetailsFetch(msg.details)
	a.logbook.Trace(order.TraceID, "Analysis ready for %s", msg.details.Business.Name)
	a.statusMsg = "c → call · o → order now · n → new order"
	return a, nil
}

func (a *App) handleLocateResult(msg locateResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.store.Fail(msg.err)
		a.surfaceError(msg.err)
		return a, nil
	}
	applied := a.ctrl.ApplyLocationFix(msg.gen, flow.LocationContext{
		City:      msg.fix.City,
		Latitude:  msg.fix.Latitude,
		Longitude: msg.fix.Longitude,
	})
	a.store.Settle()
	if !applied {
		// Superseded while in flight; drop it.
		return a, nil
	}
	if city := a.ctrl.Order().Location.City; city != "" {
		a.cityInput.SetValue(city)
		a.statusMsg = "Using " + city
	}
	if msg.fix.City == "" && msg.fix.Latitude != "" {
		// Coordinates landed first; the city arrives from the background
		// reverse-geocode under the same generation.
		return a, a.resolveCityCmd(msg.gen, msg.fix.Latitude, msg.fix.Longitude)
	}
	return a, nil
}

func (a *App) handleCityResolved(msg cityResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logbook.Warn("Reverse geocode failed: %v", msg.err)
		return a, nil
	}
	if msg.city == "" {
		return a, nil
	}
	if a.ctrl.ApplyLocationFix(msg.gen, flow.LocationContext{City: msg.city}) {
		a.cityInput.SetValue(msg.city)
		a.statusMsg = "Using " + msg.city
	}
	return a, nil
}

// parseSchedule combines the two free-form inputs into one timestamp. Blank
// fields fall back to the current schedule; there is no past/future check.
func parseSchedule(dateValue, timeValue string, fallback time.Time) (time.Time, error) {
	dateValue = strings.TrimSpace(dateValue)
	timeValue = strings.TrimSpace(timeValue)
	if fallback.IsZero() {
		fallback = time.Now()
	}

	day := fallback
	if dateValue != "" {
		parsed, err := time.ParseInLocation(dateLayout, dateValue, time.Local)
		if err != nil {
			return time.Time{}, &flow.ValidationError{
				Title:  "Invalid Date",
				Reason: "Please use the " + dateLayout + " format.",
			}
		}
		day = parsed
	}

	clock := fallback
	if timeValue != "" {
		parsed, err := time.ParseInLocation(timeLayout, timeValue, time.Local)
		if err != nil {
			return time.Time{}, &flow.ValidationError{
				Title:  "Invalid Time",
				Reason: "Please use the " + timeLayout + " format.",
			}
		}
		clock = parsed
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}
