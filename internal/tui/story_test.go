package tui

import (
	"strings"
	"testing"

	"seaskills/internal/app"
)

func TestStoryBodyText_FlattensHTML(t *testing.T) {
	body := "<p>The <strong>Patrol Service</strong> swept mines.</p><p>Crews came from fishing ports &amp; harbours.</p>"
	story := app.NewsStory{Body: &body}

	got := storyBodyText(story)
	want := "The Patrol Service swept mines.\n\nCrews came from fishing ports & harbours."
	if got != want {
		t.Fatalf("unexpected body text:\n got %q\nwant %q", got, want)
	}
}

func TestStoryBodyText_FallsBackToExcerpt(t *testing.T) {
	excerpt := "A short dispatch."
	blank := "   "
	story := app.NewsStory{Body: &blank, Excerpt: &excerpt}

	if got := storyBodyText(story); got != "A short dispatch." {
		t.Fatalf("expected excerpt fallback, got %q", got)
	}
}

func TestStoryBodyText_EmptyStory(t *testing.T) {
	if got := storyBodyText(app.NewsStory{}); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestWrapText_BreaksLongParagraphs(t *testing.T) {
	text := "one two three four five six"
	got := wrapText(text, 13)
	want := "one two three\nfour five six"
	if got != want {
		t.Fatalf("unexpected wrap:\n got %q\nwant %q", got, want)
	}
}

func TestWrapText_KeepsParagraphBreaks(t *testing.T) {
	got := wrapText("first\n\nsecond", 40)
	if got != "first\n\nsecond" {
		t.Fatalf("paragraph break lost: %q", got)
	}
}

func TestStoryExcerpt_Truncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	story := app.NewsStory{Excerpt: &long}

	got := storyExcerpt(story)
	if len(got) != 143 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 140 chars plus ellipsis, got %d: %q", len(got), got)
	}
}

func TestBodyWidth(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{0, 80},
		{120, 80},
		{60, 56},
		{10, 24},
	}
	for _, tc := range cases {
		if got := bodyWidth(tc.width); got != tc.want {
			t.Errorf("bodyWidth(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}
