package repl

import (
	"testing"
)

func TestParse(t *testing.T) {
	lemmas, labels := parse("cat sit #news #en mat")
	if len(lemmas) != 3 || lemmas[0] != "cat" || lemmas[1] != "sit" || lemmas[2] != "mat" {
		t.Errorf("unexpected lemmas: %v", lemmas)
	}
	if len(labels) != 2 || labels[0] != "news" || labels[1] != "en" {
		t.Errorf("unexpected labels: %v", labels)
	}
}

func TestParseEmptyLabelDropped(t *testing.T) {
	lemmas, labels := parse("cat #")
	if len(lemmas) != 1 {
		t.Errorf("unexpected lemmas: %v", lemmas)
	}
	if len(labels) != 0 {
		t.Errorf("expected no labels, got %v", labels)
	}
}

func TestNextFormatCycles(t *testing.T) {
	h := &Handler{Format: "text"}

	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		h.nextFormat()
		seen[h.Format] = true
	}
	if !seen["table"] || !seen["conllu"] || !seen["text"] {
		t.Errorf("formats not cycled: %v", seen)
	}
}

func TestNextFormatUnknownResets(t *testing.T) {
	h := &Handler{Format: "bogus"}
	h.nextFormat()
	if h.Format != "text" {
		t.Errorf("expected reset to text, got %q", h.Format)
	}
}
