package service

import (
	"testing"

	"truthscope_backend/internal/media/transport"
)

func TestDecodeModel_ImageVerdict(t *testing.T) {
	raw := "```json\n{\"ai_generated_score\":0.85,\"description\":\"studio portrait\",\"manipulation_indicators\":[\"inconsistent lighting\"],\"context_analysis\":\"could be passed off as a press photo\"}\n```"

	verdict, err := decodeModel[transport.ImageModelVerdict](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.AIGeneratedScore != 0.85 {
		t.Fatalf("expected score 0.85, got %f", verdict.AIGeneratedScore)
	}
	if len(verdict.ManipulationIndicators) != 1 {
		t.Fatalf("expected 1 indicator, got %v", verdict.ManipulationIndicators)
	}
}

func TestDecodeModel_AudioVerdict(t *testing.T) {
	raw := `{"scam_score":0.92,"scam_indicators":["urgency pressure"],"deceptive_tactics":["impersonating bank staff"],"transcript_summary":"caller demands an OTP"}`

	verdict, err := decodeModel[transport.AudioModelVerdict](raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.ScamScore != 0.92 {
		t.Fatalf("expected scam score 0.92, got %f", verdict.ScamScore)
	}
	if verdict.TranscriptSummary == "" {
		t.Fatal("expected transcript summary to decode")
	}
}

func TestDecodeModel_RejectsProseOnlyOutput(t *testing.T) {
	if _, err := decodeModel[transport.VideoModelVerdict]("I cannot analyze this video."); err == nil {
		t.Fatal("expected error for output without a JSON object")
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{12.7, 1},
	}

	for _, tc := range cases {
		if got := clampScore(tc.in); got != tc.want {
			t.Fatalf("clampScore(%f): expected %f, got %f", tc.in, tc.want, got)
		}
	}
}
