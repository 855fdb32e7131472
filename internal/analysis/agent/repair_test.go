package agent

import (
	"errors"
	"testing"

	"truthscope_backend/internal/analysis/transport"
)

func TestDecodeVerdict_FencedOutput(t *testing.T) {
	raw := "```json\n{\"verdict\":\"fake\",\"confidence_score\":0.9,\"reasoning\":\"contradicted by fact checks\",\"key_insights\":[\"claim debunked\"],\"sources_checked\":[\"https://factcheck.example\"]}\n```"

	verdict, err := DecodeVerdict(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Verdict != transport.VerdictFake {
		t.Fatalf("expected verdict fake, got %q", verdict.Verdict)
	}
	if verdict.ConfidenceScore != 0.9 {
		t.Fatalf("expected confidence 0.9, got %f", verdict.ConfidenceScore)
	}
	if len(verdict.KeyInsights) != 1 || len(verdict.SourcesChecked) != 1 {
		t.Fatalf("expected insights and sources to survive decoding: %+v", verdict)
	}
}

func TestDecodeVerdict_NormalizesUnknownVerdict(t *testing.T) {
	verdict, err := DecodeVerdict(`{"verdict":"dubious","confidence_score":0.4,"reasoning":"weak signals"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Verdict != transport.VerdictUnverified {
		t.Fatalf("expected verdict normalized to unverified, got %q", verdict.Verdict)
	}
}

func TestDecodeVerdict_ClampsConfidence(t *testing.T) {
	verdict, err := DecodeVerdict(`{"verdict":"real","confidence_score":37.5,"reasoning":"matches wire reports"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.ConfidenceScore != 1 {
		t.Fatalf("expected confidence clamped to 1, got %f", verdict.ConfidenceScore)
	}

	verdict, err = DecodeVerdict(`{"verdict":"real","confidence_score":-0.3,"reasoning":"matches wire reports"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.ConfidenceScore != 0 {
		t.Fatalf("expected confidence clamped to 0, got %f", verdict.ConfidenceScore)
	}
}

func TestDecodeVerdict_RejectsNonJSON(t *testing.T) {
	_, err := DecodeVerdict("I am unable to assess this article.")
	if !errors.Is(err, ErrBadModelOutput) {
		t.Fatalf("expected ErrBadModelOutput, got %v", err)
	}
}

func TestDecodeVerdict_RejectsMissingReasoning(t *testing.T) {
	_, err := DecodeVerdict(`{"verdict":"real","confidence_score":0.8}`)
	if !errors.Is(err, ErrBadModelOutput) {
		t.Fatalf("expected ErrBadModelOutput, got %v", err)
	}
}
