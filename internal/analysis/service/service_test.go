package service

import (
	"strings"
	"testing"
)

func TestSearchQuery_PrefersTitle(t *testing.T) {
	got := searchQuery("PM announces new scheme", "Some long article body about the announcement.")
	if got != "PM announces new scheme" {
		t.Fatalf("expected title, got %q", got)
	}
}

func TestSearchQuery_FallsBackToTruncatedText(t *testing.T) {
	text := strings.Repeat("word ", 100)
	got := searchQuery("", text)
	if len(got) > searchQueryLength {
		t.Fatalf("expected query capped at %d chars, got %d", searchQueryLength, len(got))
	}
	if !strings.HasPrefix(got, "word word") {
		t.Fatalf("expected query built from text head, got %q", got)
	}
}

func TestClaimCandidates_PicksSentenceSizedClaims(t *testing.T) {
	text := "Short one. " +
		"The government allegedly banned all cash transactions above five hundred rupees starting Monday. " +
		"A viral video claims the new highway collapsed within a week of its public inauguration. " +
		"No. " +
		"Officials reportedly confirmed that the scheme covers every resident of the three states involved. " +
		"Yet another sentence long enough to qualify as a claim for the fact check lookup step."

	claims := claimCandidates(text)
	if len(claims) != maxClaimQueries {
		t.Fatalf("expected %d claims, got %d: %v", maxClaimQueries, len(claims), claims)
	}
	for _, claim := range claims {
		if len(claim) < minClaimLength {
			t.Fatalf("claim below minimum length: %q", claim)
		}
	}
	if claims[0] != "The government allegedly banned all cash transactions above five hundred rupees starting Monday." {
		t.Fatalf("unexpected first claim: %q", claims[0])
	}
}

func TestClaimCandidates_FallsBackToWholeText(t *testing.T) {
	claims := claimCandidates("Too short. Tiny. Nope.")
	if len(claims) != 1 {
		t.Fatalf("expected single fallback claim, got %v", claims)
	}
	if claims[0] != "Too short. Tiny. Nope." {
		t.Fatalf("unexpected fallback claim: %q", claims[0])
	}
}

func TestClaimCandidates_EmptyText(t *testing.T) {
	if claims := claimCandidates("   "); claims != nil {
		t.Fatalf("expected no claims for blank text, got %v", claims)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First claim. Second claim! Was it true? अंतिम वाक्य। trailing tail")
	want := []string{"First claim.", "Second claim!", "Was it true?", "अंतिम वाक्य।", "trailing tail"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
