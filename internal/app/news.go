package app

import (
	"encoding/json"
	"regexp"
	"strings"
)

// NewsStory is an immutable snapshot of a published story. The client never
// mutates or persists stories beyond the lifetime of the screen showing them.
type NewsStory struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     *string       `json:"excerpt"`
	Body        *string       `json:"body"`
	Tags        []string      `json:"tags"`
	ImageURL    *string       `json:"image_url"`
	VideoURL    *string       `json:"video_url"`
	PublishedAt *string       `json:"published_at"`
	Category    *NewsCategory `json:"category"`
}

// NewsCategory is polymorphic on the wire: the API sends either a bare string
// or an object with id/name/slug. The raw shape is captured here once and
// resolved everywhere else through NormalizeNewsCategory.
type NewsCategory struct {
	Raw  string
	ID   *int
	Name *string
	Slug *string

	isString bool
}

func (c *NewsCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = NewsCategory{Raw: s, isString: true}
		return nil
	}
	var obj struct {
		ID   *int    `json:"id"`
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = NewsCategory{ID: obj.ID, Name: obj.Name, Slug: obj.Slug}
	return nil
}

func (c NewsCategory) MarshalJSON() ([]byte, error) {
	if c.isString {
		return json.Marshal(c.Raw)
	}
	return json.Marshal(struct {
		ID   *int    `json:"id,omitempty"`
		Name *string `json:"name,omitempty"`
		Slug *string `json:"slug,omitempty"`
	}{c.ID, c.Name, c.Slug})
}

// CategoryLabel is the resolved (label, value) pair for a story category.
// Label is what screens show; Value is what filter chips carry.
type CategoryLabel struct {
	Label string
	Value string
}

// NormalizeNewsCategory resolves the polymorphic category shape to a fixed
// pair: label prefers name then slug, value prefers slug then name. A nil or
// blank category yields empty label and value.
func NormalizeNewsCategory(c *NewsCategory) CategoryLabel {
	if c == nil {
		return CategoryLabel{}
	}
	if c.isString {
		trimmed := strings.TrimSpace(c.Raw)
		return CategoryLabel{Label: trimmed, Value: trimmed}
	}
	name := ""
	if c.Name != nil {
		name = strings.TrimSpace(*c.Name)
	}
	slug := ""
	if c.Slug != nil {
		slug = strings.TrimSpace(*c.Slug)
	}
	label := name
	if label == "" {
		label = slug
	}
	value := slug
	if value == "" {
		value = name
	}
	return CategoryLabel{Label: label, Value: value}
}

// StringCategory builds the bare-string variant, mostly for tests and the
// stub server fixtures.
func StringCategory(s string) *NewsCategory {
	return &NewsCategory{Raw: s, isString: true}
}

// NewsListMeta is the pagination cursor returned alongside a story page.
// Further pages may be requested only while CurrentPage < LastPage.
type NewsListMeta struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeTag canonicalizes a tag for matching: trimmed, lowercased, inner
// whitespace collapsed to single spaces.
func NormalizeTag(v string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(v)), " ")
}

// ResolveAssetURL turns the mixed URL shapes the API emits (absolute,
// protocol-relative, site-relative) into an absolute URL against the site
// base. Blank input resolves to "".
func ResolveAssetURL(siteBase string, raw *string) string {
	if raw == nil {
		return ""
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "//") {
		return "https:" + trimmed
	}
	base := strings.TrimRight(siteBase, "/")
	if strings.HasPrefix(trimmed, "/") {
		return base + trimmed
	}
	return base + "/" + trimmed
}
