package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreviewTextShortUnchanged(t *testing.T) {
	if got := previewText("see you at 9"); got != "see you at 9" {
		t.Errorf("previewText = %q; want input unchanged", got)
	}
}

func TestPreviewTextTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := previewText(long)
	if utf8.RuneCountInString(got) != pushPreviewRunes {
		t.Errorf("preview rune count = %d; want %d", utf8.RuneCountInString(got), pushPreviewRunes)
	}
}

func TestPreviewTextKeepsRuneBoundary(t *testing.T) {
	// every rune here is multi-byte; a byte slice at 80 would cut one in half
	long := strings.Repeat("Сәлем! ", 30)
	got := previewText(long)
	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != pushPreviewRunes {
		t.Errorf("preview rune count = %d; want %d", utf8.RuneCountInString(got), pushPreviewRunes)
	}
	if !strings.HasPrefix(long, got) {
		t.Error("preview is not a prefix of the original text")
	}
}
