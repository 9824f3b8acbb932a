package tui

import (
	"regexp"
	"strings"

	"seaskills/internal/app"
)

type storyModel struct {
	theme    Theme
	slug     string
	siteBase string
	loading  bool
	story    *app.NewsStory
	err      string
}

func (m storyModel) view(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Masthead.Render("WVA CHRONICLE"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.Muted.Render("Opening story..."))
	case m.err != "":
		b.WriteString(m.theme.Error.Render(m.err))
	case m.story == nil:
		b.WriteString(m.theme.Muted.Render("Story not found."))
	default:
		b.WriteString(m.storyView(*m.story, width))
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.HelpBar.Render("esc back"))
	return b.String()
}

func (m storyModel) storyView(story app.NewsStory, width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Headline.Render(story.Title))
	b.WriteString("\n")

	var meta []string
	if label := app.NormalizeNewsCategory(story.Category).Label; label != "" {
		meta = append(meta, label)
	}
	if story.PublishedAt != nil && *story.PublishedAt != "" {
		meta = append(meta, *story.PublishedAt)
	}
	if len(meta) > 0 {
		b.WriteString(m.theme.Subheadline.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if body := storyBodyText(story); body != "" {
		b.WriteString(m.theme.Body.Render(wrapText(body, bodyWidth(width))))
		b.WriteString("\n")
	}
	if img := app.ResolveAssetURL(m.siteBase, story.ImageURL); img != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("Image: " + img))
	}
	if video := app.ResolveAssetURL(m.siteBase, story.VideoURL); video != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("Video: " + video))
	}
	if len(story.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("Tags: " + strings.Join(story.Tags, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
	htmlBreaks = strings.NewReplacer("</p>", "\n\n", "<br>", "\n", "<br/>", "\n", "<br />", "\n", "&amp;", "&", "&nbsp;", " ", "&quot;", `"`, "&#39;", "'")
)

// storyBodyText flattens the API's HTML body to plain terminal text,
// falling back to the excerpt when no body was published.
func storyBodyText(story app.NewsStory) string {
	raw := ""
	if story.Body != nil {
		raw = *story.Body
	}
	if strings.TrimSpace(raw) == "" && story.Excerpt != nil {
		raw = *story.Excerpt
	}
	text := htmlTag.ReplaceAllString(htmlBreaks.Replace(raw), "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func bodyWidth(width int) int {
	if width <= 0 || width > 84 {
		return 80
	}
	if width < 24 {
		return 24
	}
	return width - 4
}

func wrapText(text string, width int) string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
