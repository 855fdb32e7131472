package agent

import (
	"encoding/json"
	"errors"
	"fmt"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/ai/gemini"
)

// ErrBadModelOutput marks output that could not be repaired into a verdict
// document. Callers map this to an internal error rather than an upstream one.
var ErrBadModelOutput = errors.New("model output is not a valid verdict document")

// DecodeVerdict repairs and decodes the model output into a verdict,
// normalizing out-of-range fields.
func DecodeVerdict(raw string) (transport.ModelVerdict, error) {
	repaired := gemini.RepairJSON(raw)
	if repaired == "" {
		return transport.ModelVerdict{}, fmt.Errorf("%w: no JSON object in output", ErrBadModelOutput)
	}

	var verdict transport.ModelVerdict
	if err := json.Unmarshal([]byte(repaired), &verdict); err != nil {
		return transport.ModelVerdict{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}

	switch verdict.Verdict {
	case transport.VerdictReal, transport.VerdictFake, transport.VerdictUnverified:
	default:
		verdict.Verdict = transport.VerdictUnverified
	}

	if verdict.ConfidenceScore < 0 {
		verdict.ConfidenceScore = 0
	}
	if verdict.ConfidenceScore > 1 {
		verdict.ConfidenceScore = 1
	}

	if verdict.Reasoning == "" {
		return transport.ModelVerdict{}, fmt.Errorf("%w: missing reasoning", ErrBadModelOutput)
	}
	return verdict, nil
}
