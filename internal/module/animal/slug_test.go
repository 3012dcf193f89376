package animal

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "Nero", want: "nero"},
		{name: "spaces become underscores", in: "Mr Whiskers", want: "mr_whiskers"},
		{name: "apostrophe stripped", in: "O'Malley", want: "omalley"},
		{name: "typographic apostrophe stripped", in: "O’Malley", want: "omalley"},
		{name: "surrounding whitespace trimmed", in: "  Luna  ", want: "luna"},
		{name: "mixed", in: "Old Tom's Cat", want: "old_toms_cat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	tests := []struct {
		name    string
		shelter string
		animal  string
		suffix  int
		want    string
	}{
		{name: "bare candidate", shelter: "test", animal: "Nero", suffix: 0, want: "test-nero"},
		{name: "first collision suffix", shelter: "test", animal: "Nero", suffix: 1, want: "test-nero-1"},
		{name: "second collision suffix", shelter: "test", animal: "Nero", suffix: 2, want: "test-nero-2"},
		{name: "multi word name", shelter: "paws", animal: "Mr Whiskers", suffix: 0, want: "paws-mr_whiskers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugCandidate(tt.shelter, tt.animal, tt.suffix); got != tt.want {
				t.Errorf("SlugCandidate(%q, %q, %d) = %q; want %q",
					tt.shelter, tt.animal, tt.suffix, got, tt.want)
			}
		})
	}
}
