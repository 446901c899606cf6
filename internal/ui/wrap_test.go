package ui

import (
	"slices"
	"testing"
)

func TestWrapFitsWidth(t *testing.T) {
	// Face7x13 advances 7 pixels per glyph.
	got := Wrap("the quick brown fox jumps", Face, 7*10)
	want := []string{"the quick", "brown fox", "jumps"}
	if !slices.Equal(got, want) {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
	for _, line := range got {
		if TextWidth(line, Face) > 70 {
			t.Fatalf("line %q too wide", line)
		}
	}
}

func TestWrapKeepsLongWords(t *testing.T) {
	got := Wrap("a supercalifragilistic b", Face, 35)
	want := []string{"a", "supercalifragilistic", "b"}
	if !slices.Equal(got, want) {
		t.Fatalf("Wrap = %q", got)
	}
}

func TestWrapHonoursNewlines(t *testing.T) {
	got := Wrap("one\n\ntwo", Face, 500)
	if !slices.Equal(got, []string{"one", "", "two"}) {
		t.Fatalf("Wrap = %q", got)
	}
}

func TestTextWidth(t *testing.T) {
	if w := TextWidth("abcd", Face); w != 28 {
		t.Fatalf("width = %d", w)
	}
}
