package tui

import (
	"fmt"
	"strings"

	"seaskills/internal/app"
)

type homeModel struct {
	theme Theme
}

func newHomeModel(theme Theme) homeModel {
	return homeModel{theme: theme}
}

var homeIntroLines = []string{
	"The WVA Maritime Heritage & Sea Skills Programme is a structured",
	"Skills activity for young people aged 13+, delivered predominantly",
	"online through the study of Britain's wartime maritime heritage.",
}

var homeAwardLines = []string{
	"Bronze: minimum of 3 months",
	"Silver: minimum of 3 months (with a 6-month Physical section)",
	"Gold: minimum of 12 months, including a research project",
}

func (m homeModel) view(application *app.Application, width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Headline.Render("Introduction to the Sea Skills programme"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subheadline.Render("Structured, flexible learning that fits the Duke of Edinburgh's Award Skills section."))
	b.WriteString("\n\n")
	for _, line := range homeIntroLines {
		b.WriteString(m.theme.Body.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Award levels and duration"))
	b.WriteString("\n")
	for _, line := range homeAwardLines {
		b.WriteString(m.theme.Body.Render("- " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.programmeMap(application))
	return b.String()
}

// programmeMap lists the week-by-week activity sequence using the same
// per-user status data the Lessons tab shows.
func (m homeModel) programmeMap(application *app.Application) string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Sea Skills programme map"))
	b.WriteString("\n")

	snap := application.Status.Snapshot()
	switch {
	case snap.Loading || snap.Refreshing:
		b.WriteString(m.theme.Muted.Render("Loading activities..."))
	case snap.Err != "":
		b.WriteString(m.theme.Error.Render(snap.Err))
	case len(snap.Activities) == 0:
		b.WriteString(m.theme.Muted.Render("No activities published yet."))
	default:
		for _, act := range snap.Activities {
			b.WriteString(m.theme.Value.Render(fmt.Sprintf("Week %-3d %s", act.WeekNumber, act.Title)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
