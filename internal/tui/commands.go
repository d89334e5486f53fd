package tui

import (
	"context"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/api"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/location"
)

// Messages produced by the async legs of the flow. All state mutation happens
// back on the update loop when these arrive.

type searchResultMsg struct {
	result api.SearchResult
	err    error
}

type detailsResultMsg struct {
	details api.BusinessDetails
	err     error
}

type locateResultMsg struct {
	gen uint64
	fix location.Fix
	err error
}

type cityResolvedMsg struct {
	gen  uint64
	city string
	err  error
}

type openTargetMsg struct {
	target string
	err    error
}

type healthProbeMsg struct {
	err error
}

func (a *App) searchCmd(query api.SearchQuery) tea.Cmd {
	return func() tea.Msg {
		result, err := a.search.SubmitSearch(context.Background(), query)
		return searchResultMsg{result: result, err: err}
	}
}

func (a *App) detailsCmd(referenceURL string) tea.Cmd {
	return func() tea.Msg {
		details, err := a.search.FetchDetails(context.Background(), referenceURL)
		return detailsResultMsg{details: details, err: err}
	}
}

func (a *App) locateCmd(gen uint64) tea.Cmd {
	return func() tea.Msg {
		fix, err := a.geo.Locate(context.Background())
		return locateResultMsg{gen: gen, fix: fix, err: err}
	}
}

// resolveCityCmd is the background enrichment leg: it may land long after the
// user moved on, which is why it carries the generation token.
func (a *App) resolveCityCmd(gen uint64, latitude, longitude string) tea.Cmd {
	return func() tea.Msg {
		city, err := a.geo.ResolveCity(context.Background(), latitude, longitude)
		return cityResolvedMsg{gen: gen, city: city, err: err}
	}
}

func (a *App) openCmd(target string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		return openTargetMsg{target: target, err: open(target)}
	}
}

func (a *App) healthProbeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
		defer cancel()
		return healthProbeMsg{err: a.health.Health(ctx)}
	}
}

// systemOpen hands a URL or tel: target to the desktop.
func systemOpen(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Run()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Run()
	default:
		return exec.Command("xdg-open", target).Run()
	}
}
