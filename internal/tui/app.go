// internal/tui/app.go
//
// The OnlyFoods terminal UI. bubbletea's Elm architecture maps directly onto
// the order flow: one model, messages for every async result, and a view per
// screen. The flow.Controller owns the screen sequence and its guards; this
// package only renders and dispatches.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/config"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/flow"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/location"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/logbook"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/session"
)

const (
	healthProbeTimeout = 5 * time.Second

	dateLayout = "01/02/2006"
	timeLayout = "3:04 PM"
)

// SearchClient is the slice of the pipeline API the screens use.
type SearchClient interface {
	SubmitSearch(ctx context.Context, q api.SearchQuery) (api.SearchResult, error)
	FetchDetails(ctx context.Context, referenceURL string) (api.BusinessDetails, error)
}

// HealthClient is the diagnostic probe, separate so tests can stub it out.
type HealthClient interface {
	Health(ctx context.Context) error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSearchClient overrides the pipeline client.
func WithSearchClient(c SearchClient) AppOption {
	return func(a *App) {
		if c != nil {
			a.search = c
		}
	}
}

// WithHealthClient overrides the health probe.
func WithHealthClient(c HealthClient) AppOption {
	return func(a *App) {
		if c != nil {
			a.health = c
		}
	}
}

// WithLocationProvider overrides the geolocation provider.
func WithLocationProvider(p location.Provider) AppOption {
	return func(a *App) {
		if p != nil {
			a.geo = p
		}
	}
}

// WithOpener overrides how tel:/https: targets are handed to the desktop.
func WithOpener(open func(string) error) AppOption {
	return func(a *App) {
		if open != nil {
			a.open = open
		}
	}
}

// alert is the modal error box. While active it blocks everything except
// quitting; any other key dismisses it.
type alert struct {
	title string
	body  string
}

// feedEntry is one row of the static recent-orders feed on Home.
type feedEntry struct {
	restaurant string
	date       string
	time       string
}

var homeFeed = []feedEntry{
	{restaurant: "The Corner Bistro", date: "June 15, 2024", time: "7:30 PM"},
	{restaurant: "Fresh Catch Sushi", date: "June 12, 2024", time: "1:00 PM"},
	{restaurant: "Noodle House", date: "June 10, 2024", time: "8:15 PM"},
}

// candidateItem adapts a BusinessCandidate to the bubbles list.
type candidateItem struct {
	c api.BusinessCandidate
}

func (i candidateItem) Title() string { return i.c.Name }

func (i candidateItem) Description() string {
	parts := []string{}
	if i.c.Price != "" && i.c.Price != "N/A" {
		parts = append(parts, i.c.Price)
	}
	if r := i.c.Rating.String(); r != "" && r != "N/A" {
		parts = append(parts, "★ "+r)
	}
	if d := i.c.Distance.String(); d != "" && d != "N/A" {
		parts = append(parts, d)
	}
	if len(parts) == 0 {
		return i.c.Address
	}
	return strings.Join(parts, " · ")
}

func (i candidateItem) FilterValue() string { return i.c.Name }

// App is the main application model. It holds all UI state; order state lives
// in the flow controller and the session store.
type App struct {
	config  *config.Config
	logbook *logbook.Logbook
	store   *session.Store
	ctrl    *flow.Controller

	search SearchClient
	health HealthClient
	geo    location.Provider
	open   func(string) error

	// UI components
	descInput  textinput.Model
	imageInput textinput.Model
	cityInput  textinput.Model
	dateInput  textinput.Model
	timeInput  textinput.Model
	focus      int
	picker     list.Model
	loading    spinner.Model

	alert     *alert
	statusMsg string

	width  int
	height int
}

// NewApp wires the full application. The real pipeline client and geo
// provider come from cfg; tests swap them through options.
func NewApp(cfg *config.Config, lb *logbook.Logbook, opts ...AppOption) *App {
	store := session.NewStore()
	client := api.NewClient(cfg.Pipeline1URL, cfg.Pipeline2URL)

	desc := textinput.New()
	desc.Placeholder = "e.g. Delicious salad from my favorite cafe..."
	desc.CharLimit = 400
	image := textinput.New()
	image.Placeholder = "path to a photo of your food (optional)"
	city := textinput.New()
	city.Placeholder = "Enter your city"
	city.SetValue(cfg.Prefs.DefaultCity)
	date := textinput.New()
	date.Placeholder = dateLayout
	clock := textinput.New()
	clock.Placeholder = timeLayout

	picker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Choose a restaurant"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)

	loading := spinner.New()
	loading.Spinner = spinner.Dot
	loading.Style = spinnerStyle

	app := &App{
		config:     cfg,
		logbook:    lb,
		store:      store,
		ctrl:       flow.NewController(store),
		search:     client,
		health:     client,
		geo:        location.NewIPProvider(cfg.GeoURL),
		open:       systemOpen,
		descInput:  desc,
		imageInput: image,
		cityInput:  city,
		dateInput:  date,
		timeInput:  clock,
		picker:     picker,
		loading:    loading,
		statusMsg:  "Press n to start a new order",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

// Controller exposes the flow state machine, mainly for tests.
func (a *App) Controller() *flow.Controller { return a.ctrl }

// Init starts the spinner tick loop and fires the diagnostic health probe.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loading.Tick, a.healthProbeCmd())
}

// Update is the single state-transition point of the UI.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(max(20, msg.Width-6), max(8, msg.Height-14))
		a.resizeInputs()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loading, cmd = a.loading.Update(msg)
		return a, cmd

	case healthProbeMsg:
		if msg.err != nil {
			a.logbook.Warn("Pipeline health probe failed: %v", msg.err)
		} else {
			a.logbook.Info("Pipeline health probe ok")
		}
		return a, nil

	case searchResultMsg:
		return a.handleSearchResult(msg)

	case detailsResultMsg:
		return a.handleDetailsResult(msg)

	case locateResultMsg:
		return a.handleLocateResult(msg)

	case cityResolvedMsg:
		return a.handleCityResolved(msg)

	case openTargetMsg:
		if msg.err != nil {
			a.logbook.Error("Open %s: %v", msg.target, msg.err)
			a.showAlert("Error", "Failed to open "+msg.target)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// A visible alert eats the next key.
	if a.alert != nil {
		a.alert = nil
		return a, nil
	}

	// The loading overlay blocks input, same as the mobile app's modal
	// loading screen. Outstanding requests are never cancelled.
	if a.store.Loading() {
		return a, nil
	}

	// Going back never rolls anything back: the store and the order keep
	// what they accumulated.
	if key == "esc" && a.ctrl.Screen() != flow.ScreenHome {
		a.ctrl.Back()
		a.statusMsg = a.ctrl.Screen().String()
		return a, nil
	}
	if key == "q" && a.ctrl.Screen() == flow.ScreenHome {
		return a, tea.Quit
	}

	switch a.ctrl.Screen() {
	case flow.ScreenHome:
		return a.updateHome(msg)
	case flow.ScreenAddPhoto:
		return a.updateAddPhoto(msg)
	case flow.ScreenOrderDetails:
		return a.updateOrderDetails(msg)
	case flow.ScreenChooseRestaurant:
		return a.updateChooseRestaurant(msg)
	case flow.ScreenSummary:
		return a.updateSummary(msg)
	}
	return a, nil
}

func (a *App) showAlert(title, body string) {
	a.alert = &alert{title: title, body: body}
}

// surfaceError maps the error taxonomy onto a modal alert and the logbook.
func (a *App) surfaceError(err error) {
	switch e := err.(type) {
	case *flow.ValidationError:
		a.showAlert(e.Title, e.Reason)
	case *flow.PermissionError:
		a.logbook.Warn("Permission denied: %v", e)
		a.showAlert("Permission required", e.Reason)
	case *api.RequestError:
		a.logbook.Error("Request failed: %v", e)
		a.showAlert("Request Failed", e.UserMessage())
	default:
		a.logbook.Error("Unexpected error: %v", err)
		a.showAlert("Error", err.Error())
	}
}

func (a *App) resizeInputs() {
	w := max(24, a.width-10)
	for _, input := range []*textinput.Model{&a.descInput, &a.imageInput, &a.cityInput, &a.dateInput, &a.timeInput} {
		input.Width = w
	}
}

// fileReadable checks an attached image before it is accepted, the terminal
// analogue of a camera/gallery permission grant.
func fileReadable(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &flow.PermissionError{Capability: "image", Reason: fmt.Sprintf("cannot read %s", path)}
	}
	return file.Close()
}

// ScreenOf is a test hook returning the current flow screen.
func ScreenOf(a *App) flow.Screen { return a.ctrl.Screen() }
