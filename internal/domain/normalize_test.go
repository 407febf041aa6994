package domain

import (
	"strings"
	"testing"
)

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"lowercases", "Hello", "hello"},
		{"trims", "  cat  ", "cat"},
		{"compresses inner spaces", "ice   cream", "ice cream"},
		{"preserves apostrophe", "O'Clock", "o'clock"},
		{"preserves hyphen", "well-known", "well-known"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeWord(tt.input); got != tt.want {
				t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "Cat", "cat"},
		{"spaces to hyphens", "ice cream", "ice-cream"},
		{"multiple spaces collapse", "ice   cream", "ice-cream"},
		{"strips punctuation", "don't stop!", "dont-stop"},
		{"collapses mixed separators", "a - b", "a-b"},
		{"trims leading separators", "  -cat", "cat"},
		{"trims trailing separators", "cat- ", "cat"},
		{"underscores become hyphens", "snake_case", "snake-case"},
		{"digits preserved", "route 66", "route-66"},
		{"non-latin stripped", "კატა", ""},
		{"mixed script keeps latin", "კატა cat", "cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Slugify must be idempotent and emit only lowercase alphanumerics and
// single interior hyphens.
func TestSlugify_Properties(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "Cat", "ice cream", "  Hello,  World!  ", "a-b-c", "--a--b--",
		"don't", "Tbilisi 2024", "თბილისი", "x", "A  B\tC", "one_two three",
	}

	for _, in := range inputs {
		got := Slugify(in)

		if again := Slugify(got); again != got {
			t.Errorf("Slugify not idempotent for %q: %q -> %q", in, got, again)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Slugify(%q) = %q contains doubled hyphen", in, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Slugify(%q) = %q has leading/trailing hyphen", in, got)
		}
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			if !valid {
				t.Errorf("Slugify(%q) = %q contains invalid rune %q", in, got, r)
			}
		}
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"cat", "Cat"},
		{"Cat", "Cat"},
		{"éclair", "Éclair"},
		{"ice cream", "Ice cream"},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.input); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
