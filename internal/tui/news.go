package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"seaskills/internal/app"
)

type newsModel struct {
	theme  Theme
	cursor int
	chip   int
}

func newNewsModel(theme Theme) newsModel {
	return newsModel{theme: theme}
}

func feedCmd(do func(ctx context.Context)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		do(ctx)
		return tickMsg(time.Now())
	}
}

func (m newsModel) update(msg tea.Msg, application *app.Application) (newsModel, *app.NewsStory, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, nil
	}

	stories := application.Feed.VisibleStories()
	chips := application.Feed.FilterChips()

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(stories)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.chip > 0 {
			m.chip--
			m.cursor = 0
			value := chips[m.chip].Value
			return m, nil, feedCmd(func(ctx context.Context) {
				application.Feed.SetFilter(ctx, value)
			})
		}
	case "right", "l":
		if m.chip < len(chips)-1 {
			m.chip++
			m.cursor = 0
			value := chips[m.chip].Value
			return m, nil, feedCmd(func(ctx context.Context) {
				application.Feed.SetFilter(ctx, value)
			})
		}
	case "r":
		m.cursor = 0
		m.chip = 0
		return m, nil, feedCmd(func(ctx context.Context) {
			application.Feed.Refresh(ctx)
		})
	case "m":
		return m, nil, feedCmd(func(ctx context.Context) {
			application.Feed.LoadMore(ctx)
		})
	case "enter":
		if m.cursor >= 0 && m.cursor < len(stories) {
			story := stories[m.cursor]
			return m, &story, nil
		}
	}
	return m, nil, nil
}

func (m newsModel) view(application *app.Application, width int) string {
	snap := application.Feed.Snapshot()
	stories := application.Feed.VisibleStories()
	chips := application.Feed.FilterChips()

	var b strings.Builder
	b.WriteString(m.theme.Headline.Render("Latest dispatches"))
	b.WriteString("\n\n")
	b.WriteString(m.chipRow(chips, snap.ActiveFilter))
	b.WriteString("\n\n")

	switch {
	case snap.Loading:
		b.WriteString(m.theme.Muted.Render("Fetching the latest edition..."))
	case snap.Err != "" && len(stories) == 0:
		b.WriteString(m.theme.Error.Render(snap.Err))
	case len(stories) == 0:
		b.WriteString(m.theme.Muted.Render("No stories match this filter."))
	default:
		if snap.Err != "" {
			b.WriteString(m.theme.Error.Render(snap.Err))
			b.WriteString("\n\n")
		}
		if snap.Refreshing {
			b.WriteString(m.theme.Muted.Render("Refreshing..."))
			b.WriteString("\n\n")
		}
		for i, story := range stories {
			b.WriteString(m.storyRow(story, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		switch {
		case snap.LoadingMore:
			b.WriteString(m.theme.Muted.Render("Loading more..."))
		case snap.HasMore():
			b.WriteString(m.theme.Muted.Render(fmt.Sprintf("page %d of %d, press m for more", snap.Page, snap.LastPage)))
		default:
			b.WriteString(m.theme.Muted.Render("End of the archive."))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m newsModel) chipRow(chips []app.CategoryLabel, active string) string {
	parts := make([]string, 0, len(chips))
	for i, chip := range chips {
		style := m.theme.Chip
		if chip.Value == active || (active == "" && i == 0) {
			style = m.theme.ChipActive
		}
		parts = append(parts, style.Render(chip.Label))
	}
	return strings.Join(parts, " ")
}

func (m newsModel) storyRow(story app.NewsStory, focused bool) string {
	style := m.theme.Card
	if focused {
		style = m.theme.CardFocused
	}

	var meta []string
	if label := app.NormalizeNewsCategory(story.Category).Label; label != "" {
		meta = append(meta, label)
	}
	if story.PublishedAt != nil && *story.PublishedAt != "" {
		meta = append(meta, *story.PublishedAt)
	}
	if len(story.Tags) > 0 {
		meta = append(meta, strings.Join(story.Tags, ", "))
	}

	line := story.Title
	if excerpt := storyExcerpt(story); excerpt != "" {
		line += "\n" + excerpt
	}
	if len(meta) > 0 {
		line += "\n" + m.theme.Muted.Render(strings.Join(meta, " · "))
	}
	return style.Render(line)
}

func storyExcerpt(story app.NewsStory) string {
	if story.Excerpt == nil {
		return ""
	}
	excerpt := strings.TrimSpace(*story.Excerpt)
	const max = 140
	if len(excerpt) > max {
		excerpt = excerpt[:max] + "..."
	}
	return excerpt
}

func (m newsModel) helpLine() string {
	return "↑/↓ story • ←/→ filter • enter open • r refresh • m more"
}
