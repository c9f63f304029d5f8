package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	lines := wrapText("Wear proper lab PPE such as gloves and goggles", 16)
	want := []string{"Wear proper lab", "PPE such as", "gloves and", "goggles"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, lines)
	}
	for _, l := range lines {
		if runewidth.StringWidth(l) > 16 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
}

func TestWrapTextSplitsLongWord(t *testing.T) {
	lines := wrapText("abcdefghij xy", 4)
	want := []string{"abcd", "efgh", "ij", "xy"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, lines)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	lines := wrapText("烧杯 安全 规则", 5)
	for _, l := range lines {
		if runewidth.StringWidth(l) > 5 {
			t.Fatalf("line %q exceeds width", l)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	lines := wrapText("keep as is", 0)
	if len(lines) != 1 || lines[0] != "keep as is" {
		t.Fatalf("expected unwrapped text, got %q", lines)
	}
	if got := wrapText("   ", 10); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected single empty line, got %q", got)
	}
}

func TestWrapIndented(t *testing.T) {
	out := wrapIndented("1. ", "one two three", 10)
	want := "1. one two\n   three"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}
