package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"seaskills/internal/app"
)

type lessonSection int

const (
	sectionProgress lessonSection = iota
	sectionQuiz
	sectionLog
)

type upcomingDate struct {
	title  string
	detail string
}

var upcomingDates = []upcomingDate{
	{
		title:  "Battle of the Atlantic (September 1939 - May 1945)",
		detail: "Trace the longest continuous naval campaign of the war, following convoy routes, escort screens and patrol zones that protected Britain's survival against U-boats and surface raiders.",
	},
	{
		title:  "Operation Dynamo (26 May - 4 June 1940)",
		detail: "Plot the Royal Navy and Royal Naval Patrol Service escort lanes, mineswept channels and small-craft routes that enabled the evacuation of over 338,000 Allied troops from Dunkirk's beaches and the Mole.",
	},
	{
		title:  "Attack on Taranto (11-12 November 1940)",
		detail: "Explore the pioneering Royal Navy carrier strike in which aircraft from HMS Illustrious crippled the Italian battle fleet at anchor, transforming naval warfare.",
	},
	{
		title:  "Arctic Convoys to Russia (August 1941 - May 1945)",
		detail: "Track the perilous northern routes to the Soviet Union, highlighting escort operations and minesweeping under extreme weather and constant enemy threat.",
	},
	{
		title:  "D-Day - Normandy Landings (6 June 1944)",
		detail: "Map the pre-assault minesweeping, navigation marking and close-in patrol work that allowed thousands of Allied ships and landing craft to cross the Channel safely.",
	},
	{
		title:  "Operation Neptune (June 1944)",
		detail: "Rehearse the sustained coastal sweeps, harbour clearance and escort duties that protected the seaborne build-up and resupply of the Normandy bridgehead.",
	},
}

type lessonModel struct {
	theme   Theme
	section lessonSection

	quiz      *app.Quiz
	question  int
	selected  map[string]string
	submitted bool

	report  textarea.Model
	minutes textinput.Model
	logErr  string
	logOK   bool
}

func newLessonModel(theme Theme) lessonModel {
	report := textarea.New()
	report.Placeholder = "Write your mission report..."
	report.SetWidth(60)
	report.SetHeight(5)

	minutes := textinput.New()
	minutes.Placeholder = "minutes spent"
	minutes.CharLimit = 5
	minutes.Width = 14

	return lessonModel{
		theme:    theme,
		quiz:     app.RNPSQuiz(),
		selected: map[string]string{},
		report:   report,
		minutes:  minutes,
	}
}

func (m lessonModel) update(msg tea.Msg, application *app.Application) (lessonModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.section == sectionLog {
			return m.updateLogInputs(msg)
		}
		return m, nil
	}

	// Section cycling works the same from anywhere on the tab.
	if key.String() == "s" && !m.typing() {
		m.section = (m.section + 1) % 3
		if m.section == sectionLog {
			return m, m.report.Focus()
		}
		m.report.Blur()
		m.minutes.Blur()
		return m, nil
	}

	switch m.section {
	case sectionProgress:
		if key.String() == "r" {
			return m, feedCmd(func(ctx context.Context) {
				application.Status.Load(ctx, true)
			})
		}
	case sectionQuiz:
		return m.updateQuiz(key), nil
	case sectionLog:
		return m.updateLog(key, msg)
	}
	return m, nil
}

func (m lessonModel) typing() bool {
	return m.section == sectionLog && (m.report.Focused() || m.minutes.Focused())
}

func (m lessonModel) updateQuiz(key tea.KeyMsg) lessonModel {
	question := m.quiz.Questions[m.question]
	switch key.String() {
	case "left", "h":
		if m.question > 0 {
			m.question--
		}
	case "right", "l":
		if m.question < len(m.quiz.Questions)-1 {
			m.question++
		}
	case "a", "b", "c", "d":
		if !m.submitted {
			m.selected[question.ID] = strings.ToUpper(key.String())
		}
	case "enter":
		if !m.submitted && len(m.selected) == len(m.quiz.Questions) {
			m.submitted = true
		}
	case "x":
		m.selected = map[string]string{}
		m.submitted = false
		m.question = 0
	}
	return m
}

func (m lessonModel) updateLog(key tea.KeyMsg, msg tea.Msg) (lessonModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.report.Blur()
		m.minutes.Blur()
		return m, nil
	case "tab":
		if m.report.Focused() {
			m.report.Blur()
			return m, m.minutes.Focus()
		}
		m.minutes.Blur()
		return m, m.report.Focus()
	case "enter":
		if m.minutes.Focused() {
			m.logErr = ""
			m.logOK = false
			if err := app.ValidateMissionLog(m.report.Value()); err != nil {
				m.logErr = err.Error()
				return m, nil
			}
			if _, err := app.ParseMinutesSpent(m.minutes.Value()); err != nil {
				m.logErr = err.Error()
				return m, nil
			}
			m.logOK = true
			return m, nil
		}
	}
	return m.updateLogInputs(msg)
}

func (m lessonModel) updateLogInputs(msg tea.Msg) (lessonModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.report, cmd = m.report.Update(msg)
	cmds = append(cmds, cmd)
	m.minutes, cmd = m.minutes.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m lessonModel) view(application *app.Application, width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Headline.Render("Week 1: The Royal Navy Patrol Service"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subheadline.Render("Harry Tate's Navy and the trawlermen who swept the seas."))
	b.WriteString("\n\n")

	switch m.section {
	case sectionProgress:
		b.WriteString(m.progressView(application))
	case sectionQuiz:
		b.WriteString(m.quizView())
	case sectionLog:
		b.WriteString(m.logView())
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m lessonModel) progressView(application *app.Application) string {
	snap := application.Status.Snapshot()

	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Your progress"))
	b.WriteString("\n")
	switch {
	case snap.Loading:
		b.WriteString(m.theme.Muted.Render("Loading your activity record..."))
		b.WriteString("\n")
	case snap.Err != "":
		b.WriteString(m.theme.Error.Render(snap.Err))
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("press r to retry"))
		b.WriteString("\n")
	default:
		totals := app.SummarizeActivities(snap.Activities)
		b.WriteString(m.theme.Value.Render(fmt.Sprintf(
			"%d finished · %d pending · %d minutes logged", totals.Finished, totals.Pending, totals.Minutes)))
		b.WriteString("\n\n")
		for _, act := range snap.Activities {
			marker := "[ ]"
			if act.Status == app.ActivityFinished {
				marker = "[x]"
			}
			line := fmt.Sprintf("%s Week %-3d %s", marker, act.WeekNumber, act.Title)
			if act.MinutesSpent != nil {
				line += m.theme.Muted.Render(fmt.Sprintf("  (%d min)", *act.MinutesSpent))
			}
			b.WriteString(m.theme.Value.Render(line))
			b.WriteString("\n")
		}
		if snap.Refreshing {
			b.WriteString(m.theme.Muted.Render("Refreshing..."))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Label.Render("Upcoming Dates"))
	b.WriteString("\n")
	for _, item := range upcomingDates {
		b.WriteString(m.theme.Value.Render(item.title))
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render(wrapText(item.detail, 76)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m lessonModel) quizView() string {
	question := m.quiz.Questions[m.question]
	picked := m.selected[question.ID]

	var b strings.Builder
	b.WriteString(m.theme.Label.Render(m.quiz.Title))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("question %d of %d, %d answered",
		m.question+1, len(m.quiz.Questions), len(m.selected))))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Body.Render(wrapText(question.Prompt, 76)))
	b.WriteString("\n\n")

	for _, option := range question.Options {
		style := m.theme.Chip
		suffix := ""
		if option.Key == picked {
			style = m.theme.ChipActive
			if m.submitted {
				if m.quiz.Correct(question.ID, picked) {
					suffix = m.theme.Success.Render(" correct")
				} else {
					suffix = m.theme.Error.Render(" incorrect")
				}
			}
		}
		b.WriteString(style.Render(fmt.Sprintf("%s. %s", option.Key, option.Label)))
		b.WriteString(suffix)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.submitted {
		score := m.quiz.Score(m.selected)
		if m.quiz.AllCorrect(m.selected) {
			b.WriteString(m.theme.Success.Render(fmt.Sprintf("Full marks: %d/%d. Lesson complete.", score, len(m.quiz.Questions))))
		} else {
			b.WriteString(m.theme.Value.Render(fmt.Sprintf("Score: %d/%d. Press x to try again.", score, len(m.quiz.Questions))))
		}
	} else if len(m.selected) == len(m.quiz.Questions) {
		b.WriteString(m.theme.Button.Render("enter to submit"))
	} else {
		b.WriteString(m.theme.Muted.Render("answer every question to submit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m lessonModel) logView() string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Mission log"))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Record what you did this week and how long it took."))
	b.WriteString("\n\n")
	b.WriteString(m.report.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Label.Render("Minutes spent"))
	b.WriteString("\n")
	b.WriteString(m.minutes.View())
	b.WriteString("\n\n")
	if m.logErr != "" {
		b.WriteString(m.theme.Error.Render(m.logErr))
		b.WriteString("\n")
	}
	if m.logOK {
		b.WriteString(m.theme.Success.Render("Mission log saved for this session."))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render("tab switch field • enter (in minutes) save"))
	b.WriteString("\n")
	return b.String()
}

func (m lessonModel) helpLine() string {
	switch m.section {
	case sectionQuiz:
		return "s section • ←/→ question • a-d answer • enter submit • x reset"
	case sectionLog:
		return "esc stop typing • s section"
	}
	return "s section • r refresh"
}
