// Package localize translates verdict summaries into the language of the
// analyzed content using the Cloud Translation API.
package localize

import (
	"context"
	"fmt"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/sanitize"
)

// detectSampleSize bounds the text sent to language detection.
const detectSampleSize = 500

// Localizer detects the input language and translates the verdict summary
// for non-English content.
type Localizer struct {
	client *translate.Client
	log    *logger.Logger
}

// New creates a Cloud Translation connector. Returns nil (localization
// disabled) when no API key is configured.
func New(ctx context.Context, apiKey string, log *logger.Logger) (*Localizer, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := translate.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}

	return &Localizer{client: client, log: log}, nil
}

// Close releases the underlying connection.
func (l *Localizer) Close() error {
	return l.client.Close()
}

// DetectLanguage returns the dominant language tag of the sample's head.
func (l *Localizer) DetectLanguage(ctx context.Context, sample string) (language.Tag, error) {
	sample = sanitize.Truncate(sanitize.CollapseWhitespace(sample), detectSampleSize)
	if sample == "" {
		return language.English, nil
	}

	detections, err := l.client.DetectLanguage(ctx, []string{sample})
	if err != nil {
		l.log.UpstreamError("translate", "detect", err)
		return language.Und, fmt.Errorf("detect language: %w", err)
	}
	if len(detections) == 0 || len(detections[0]) == 0 {
		return language.Und, fmt.Errorf("detect language: empty detection result")
	}

	return detections[0][0].Language, nil
}

// Summarize builds a localized summary of the verdict when the analyzed
// content is not English. Returns nil for English or undetermined input.
func (l *Localizer) Summarize(ctx context.Context, sample string, verdict transport.ModelVerdict) (*transport.LocalizedSummary, error) {
	tag, err := l.DetectLanguage(ctx, sample)
	if err != nil {
		return nil, err
	}

	base, _ := tag.Base()
	if tag == language.Und || base.String() == "en" {
		return nil, nil
	}

	inputs := make([]string, 0, 1+len(verdict.KeyInsights))
	inputs = append(inputs, verdict.Reasoning)
	inputs = append(inputs, verdict.KeyInsights...)

	translations, err := l.client.Translate(ctx, inputs, tag, nil)
	if err != nil {
		l.log.UpstreamError("translate", "translate", err)
		return nil, fmt.Errorf("translate summary: %w", err)
	}
	if len(translations) != len(inputs) {
		return nil, fmt.Errorf("translate summary: got %d translations for %d inputs", len(translations), len(inputs))
	}

	summary := &transport.LocalizedSummary{
		Language:    tag.String(),
		Reasoning:   translations[0].Text,
		KeyInsights: make([]string, 0, len(translations)-1),
	}
	for _, t := range translations[1:] {
		summary.KeyInsights = append(summary.KeyInsights, t.Text)
	}
	return summary, nil
}
