package quiz

import (
	"strings"
	"testing"
)

func TestSegment_FiltersShortFragments(t *testing.T) {
	text := "Short one. This sentence has enough words to be kept!! Tiny?  Another long enough sentence is right here... ok"
	got := Segment(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %+v", len(got), got)
	}
	if got[0].Text != "This sentence has enough words to be kept" {
		t.Fatalf("unexpected first sentence %q", got[0].Text)
	}
	if got[1].Text != "Another long enough sentence is right here" {
		t.Fatalf("unexpected second sentence %q", got[1].Text)
	}
	for i, s := range got {
		if s.Index != i {
			t.Fatalf("sentence %d has index %d", i, s.Index)
		}
	}
}

func TestSegment_LengthBoundary(t *testing.T) {
	// exactly 20 characters and 5 tokens
	exact := "aaa bbb ccc ddd eeee"
	if len(exact) != 20 {
		t.Fatalf("fixture must be 20 chars, is %d", len(exact))
	}
	if got := Segment(exact + "."); len(got) != 0 {
		t.Fatalf("20-char fragment must be dropped, got %+v", got)
	}
	if got := Segment("aaa bbb ccc ddd eeeee."); len(got) != 1 {
		t.Fatalf("21-char fragment with 5 tokens must be kept, got %+v", got)
	}
}

func TestSegment_TokenBoundary(t *testing.T) {
	five := "extraordinarily long words only here"
	if n := len(strings.Fields(five)); n != 5 {
		t.Fatalf("fixture must have 5 tokens, has %d", n)
	}
	if got := Segment("extraordinarily lengthy vocabulary everywhere."); len(got) != 0 {
		t.Fatalf("4-token fragment must be dropped, got %+v", got)
	}
	if got := Segment(five); len(got) != 1 {
		t.Fatalf("5-token fragment must be kept, got %+v", got)
	}
}

func TestSegment_Empty(t *testing.T) {
	if got := Segment(""); len(got) != 0 {
		t.Fatalf("expected no sentences, got %+v", got)
	}
	if got := Segment("...!!!???"); len(got) != 0 {
		t.Fatalf("expected no sentences, got %+v", got)
	}
}
