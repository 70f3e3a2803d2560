package pattern

import (
	"testing"

	"mentionwatch/internal/normalize"
)

func mustCompile(t *testing.T, name string) *Pattern {
	t.Helper()
	p, err := Compile(name)
	if err != nil {
		t.Fatalf("Compile(%q): %v", name, err)
	}
	if p == nil {
		t.Fatalf("Compile(%q) returned no pattern", name)
	}
	return p
}

func TestCompileSkipsShortNames(t *testing.T) {
	for _, name := range []string{"", "  ", "AB", "é"} {
		p, err := Compile(name)
		if err != nil {
			t.Fatalf("Compile(%q): %v", name, err)
		}
		if p != nil {
			t.Errorf("Compile(%q) = pattern, want nil for short name", name)
		}
	}
}

func TestPatternVariants(t *testing.T) {
	p := mustCompile(t, "Matt Corby")

	tests := []struct {
		text string
		want bool
	}{
		{"matt corby released a song", true},
		{"MATT CORBY'S new single", true},
		{"Matt Corby’s tour dates", true},          // curly apostrophe
		{"Matt Corbyʼs tour dates", true},          // modifier letter apostrophe
		{"photos of @matt corby backstage", true},  // mention form keeps the space
		{"trending: #matt corby", true},            // hashtag form keeps the space
		{"@mattcorby posted a photo", false},       // no spaceless variant
		{"#mattcorby is trending", false},          // no spaceless variant
		{"an interview with matt corbyn", false},   // trailing word char
		{"(Matt Corby) confirmed", true},           // punctuation-adjacent
		{"Matt Corby, among others", true},
		{"the mattcorby fan club", false},
	}

	for _, tt := range tests {
		norm := normalize.Text(tt.text)
		if got := p.MatchString(norm); got != tt.want {
			t.Errorf("MatchString(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestPatternBoundaries(t *testing.T) {
	p := mustCompile(t, "Art")

	tests := []struct {
		text string
		want bool
	}{
		{"an exhibition by Art", true},
		{"Art's new show", true},
		{"the Artisan bakery", false},
		{"modern artwork on display", false},
		{"stuart came by", false},
	}

	for _, tt := range tests {
		norm := normalize.Text(tt.text)
		if got := p.MatchString(norm); got != tt.want {
			t.Errorf("MatchString(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestPatternAccentInsensitive(t *testing.T) {
	p := mustCompile(t, "Beyoncé")
	if !p.MatchString(normalize.Text("A new Beyonce record")) {
		t.Error("accented client name should match unaccented text")
	}
	if !p.MatchString(normalize.Text("A new BEYONCÉ record")) {
		t.Error("accented client name should match accented text")
	}
}

func TestCompileAll(t *testing.T) {
	s := CompileAll([]string{"Matt Corby", "AB", "Josh Pyke"})
	if s.Len() != 2 {
		t.Fatalf("CompileAll kept %d patterns, want 2", s.Len())
	}

	matched := s.Match(normalize.Text("Josh Pyke and Matt Corby share a stage"))
	if len(matched) != 2 {
		t.Fatalf("Match returned %v, want both clients", matched)
	}
	// Supply order is preserved.
	if matched[0] != "Matt Corby" || matched[1] != "Josh Pyke" {
		t.Errorf("Match order = %v, want [Matt Corby Josh Pyke]", matched)
	}
}
