package app

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNormalizeNewsCategory(t *testing.T) {
	tests := []struct {
		name      string
		category  *NewsCategory
		wantLabel string
		wantValue string
	}{
		{
			name:      "object with name only",
			category:  &NewsCategory{Name: strPtr("Community")},
			wantLabel: "Community",
			wantValue: "Community",
		},
		{
			name:      "bare string",
			category:  StringCategory("Archive"),
			wantLabel: "Archive",
			wantValue: "Archive",
		},
		{
			name:     "nil category",
			category: nil,
		},
		{
			name:      "object prefers name for label and slug for value",
			category:  &NewsCategory{Name: strPtr("Ship News"), Slug: strPtr("ship-news")},
			wantLabel: "Ship News",
			wantValue: "ship-news",
		},
		{
			name:      "object with slug only",
			category:  &NewsCategory{Slug: strPtr("archive")},
			wantLabel: "archive",
			wantValue: "archive",
		},
		{
			name:     "blank string",
			category: StringCategory("   "),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeNewsCategory(tc.category)
			if got.Label != tc.wantLabel || got.Value != tc.wantValue {
				t.Fatalf("NormalizeNewsCategory() = (%q, %q), want (%q, %q)",
					got.Label, got.Value, tc.wantLabel, tc.wantValue)
			}
		})
	}
}

func TestNewsCategoryUnmarshal_BothShapes(t *testing.T) {
	var story NewsStory
	if err := json.Unmarshal([]byte(`{"id":1,"title":"t","slug":"t","category":"Archive"}`), &story); err != nil {
		t.Fatal(err)
	}
	if got := NormalizeNewsCategory(story.Category); got.Value != "Archive" {
		t.Fatalf("string category value = %q, want %q", got.Value, "Archive")
	}

	if err := json.Unmarshal([]byte(`{"id":2,"title":"t","slug":"t","category":{"id":3,"name":"Community","slug":null}}`), &story); err != nil {
		t.Fatal(err)
	}
	got := NormalizeNewsCategory(story.Category)
	if got.Label != "Community" || got.Value != "Community" {
		t.Fatalf("object category = (%q, %q), want (Community, Community)", got.Label, got.Value)
	}
}

func TestNormalizeTag(t *testing.T) {
	if got := NormalizeTag("  Loss   Report "); got != "loss report" {
		t.Fatalf("NormalizeTag() = %q, want %q", got, "loss report")
	}
}

func TestResolveAssetURL(t *testing.T) {
	base := "https://www.wartimemaritime.org"
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"nil", nil, ""},
		{"blank", strPtr("   "), ""},
		{"absolute", strPtr("https://cdn.example.org/a.jpg"), "https://cdn.example.org/a.jpg"},
		{"protocol relative", strPtr("//cdn.example.org/a.jpg"), "https://cdn.example.org/a.jpg"},
		{"site relative", strPtr("/images/a.jpg"), base + "/images/a.jpg"},
		{"bare path", strPtr("images/a.jpg"), base + "/images/a.jpg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveAssetURL(base, tc.in); got != tc.want {
				t.Fatalf("ResolveAssetURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSummarizeActivities(t *testing.T) {
	thirty := 30
	activities := []SeaSkillsActivity{
		{Status: ActivityFinished, MinutesSpent: &thirty},
		{Status: ActivityPending, MinutesSpent: nil},
	}
	got := SummarizeActivities(activities)
	if got.Finished != 1 || got.Pending != 1 || got.Minutes != 30 {
		t.Fatalf("SummarizeActivities() = %+v, want {Finished:1 Pending:1 Minutes:30}", got)
	}
}

func TestLooseBool_ToleratesNumbersAndNull(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{"auto_completed":true}`, true},
		{`{"auto_completed":1}`, true},
		{`{"auto_completed":0}`, false},
		{`{"auto_completed":null}`, false},
	}
	for _, tc := range tests {
		var a SeaSkillsActivity
		if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if bool(a.AutoCompleted) != tc.want {
			t.Fatalf("auto_completed from %s = %v, want %v", tc.in, a.AutoCompleted, tc.want)
		}
	}
}
