package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/flow"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50")).
			Bold(true)
	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
	verdictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7B801")).
			Bold(true)
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5B8DEF"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 2)
)

var screenOrder = []flow.Screen{
	flow.ScreenHome,
	flow.ScreenAddPhoto,
	flow.ScreenOrderDetails,
	flow.ScreenChooseRestaurant,
	flow.ScreenSummary,
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	if a.store.Loading() {
		content = a.renderLoading()
	} else {
		switch a.ctrl.Screen() {
		case flow.ScreenHome:
			content = a.renderHome()
		case flow.ScreenAddPhoto:
			content = a.renderAddPhoto()
		case flow.ScreenOrderDetails:
			content = a.renderOrderDetails()
		case flow.ScreenChooseRestaurant:
			content = a.picker.View()
		case flow.ScreenSummary:
			content = a.renderSummary()
		}
	}

	main := boxStyle.Width(max(30, width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderFlowPanel(), "", content),
	)

	sections := []string{headerStyle.Render("◉ ONLYFOODS"), main}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := mutedStyle.MarginTop(1).Render(a.statusMsg)
	sections = append(sections, footer)

	if a.alert != nil {
		sections = append(sections, a.renderAlert())
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderFlowPanel() string {
	current := a.ctrl.Screen()
	pos := 0
	for i, s := range screenOrder {
		if s == current {
			pos = i
			break
		}
	}
	line := fmt.Sprintf("%s (%d/%d)", current.String(), pos+1, len(screenOrder))
	if pos+1 < len(screenOrder) {
		var names []string
		for _, s := range screenOrder[pos+1:] {
			names = append(names, s.String())
		}
		line += mutedStyle.Render("  next: " + strings.Join(names, " → "))
	}
	return sectionStyle.Render(line)
}

func (a *App) renderHome() string {
	lines := []string{sectionStyle.Render("Recent orders"), ""}
	for _, entry := range homeFeed {
		lines = append(lines,
			labelStyle.Render(entry.restaurant),
			mutedStyle.Render(fmt.Sprintf("  %s · %s", entry.date, entry.time)),
		)
	}
	lines = append(lines, "", mutedStyle.Render("n → new order   q → quit"))
	return strings.Join(lines, "\n")
}

func (a *App) renderAddPhoto() string {
	lines := []string{
		sectionStyle.Render("What are you craving?"),
		"",
		labelStyle.Render("Description"),
		a.descInput.View(),
		"",
		labelStyle.Render("Photo"),
		a.imageInput.View(),
	}
	if strings.TrimSpace(a.imageInput.Value()) == "" {
		lines = append(lines, mutedStyle.Render("  no photo attached"))
	}
	lines = append(lines, "", mutedStyle.Render("tab → switch field   enter → continue   esc → back"))
	return strings.Join(lines, "\n")
}

func (a *App) renderOrderDetails() string {
	order := a.ctrl.Order()
	item := order.Draft.Description
	if item == "" {
		item = filepath.Base(order.Draft.ImagePath)
	}
	lines := []string{
		sectionStyle.Render("Your item"),
		labelStyle.Render("  " + item),
		"",
		labelStyle.Render("City"),
		a.cityInput.View(),
		mutedStyle.Render("  ctrl+l → use current location"),
		"",
		labelStyle.Render("Date"),
		a.dateInput.View(),
		"",
		labelStyle.Render("Time"),
		a.timeInput.View(),
		"",
		mutedStyle.Render("We will show shops available during this time."),
		mutedStyle.Render("tab → next field   enter → search   esc → back"),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderSummary() string {
	order := a.ctrl.Order()
	if order.Details == nil {
		return mutedStyle.Render("No summary available.")
	}
	details := order.Details
	business := details.Business

	header := []string{sectionStyle.Render(business.Name)}
	if business.Address != "" && business.Address != "N/A" {
		header = append(header, labelStyle.Render(business.Address))
	}
	meta := []string{}
	if r := business.Rating.String(); r != "" && r != "N/A" {
		meta = append(meta, "★ "+r)
	}
	if c := business.ReviewCount.String(); c != "" && c != "N/A" {
		meta = append(meta, c+" reviews")
	}
	if business.Price != "" && business.Price != "N/A" {
		meta = append(meta, business.Price)
	}
	if len(meta) > 0 {
		header = append(header, mutedStyle.Render(strings.Join(meta, " · ")))
	}

	lines := append([]string{}, header...)
	lines = append(lines, "")
	lines = appendPoints(lines, goodStyle.Render("What's great"), details.Positives)
	lines = appendPoints(lines, badStyle.Render("Could be better"), details.Negatives)
	lines = appendPoints(lines, verdictStyle.Render("Our recommendation"), details.Judgement)
	lines = append(lines,
		mutedStyle.Render("Summary based on user reviews."),
		"",
		mutedStyle.Render("c → call   o → order now   n → new order   esc → back"),
	)
	return strings.Join(lines, "\n")
}

func appendPoints(lines []string, heading string, points []string) []string {
	if len(points) == 0 {
		return lines
	}
	lines = append(lines, heading)
	for _, point := range points {
		lines = append(lines, labelStyle.Render("  • "+point))
	}
	return append(lines, "")
}

func (a *App) renderLoading() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		fmt.Sprintf("  %s %s", a.loading.View(), labelStyle.Render("Working on it...")),
		mutedStyle.Render("  hang tight, this can take a little while"),
		"",
	)
}

func (a *App) renderAlert() string {
	body := fmt.Sprintf("%s\n%s\n\n%s",
		badStyle.Render(a.alert.title),
		labelStyle.Render(a.alert.body),
		mutedStyle.Render("press any key to dismiss"),
	)
	return alertBoxStyle.Render(body)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := sectionStyle.Render("LOG · " + fileName)
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return boxStyle.Render(head + "\n" + body)
}
