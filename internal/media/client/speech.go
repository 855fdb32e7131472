package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"truthscope_backend/platform/logger"
)

const (
	speechTimeout    = 3 * time.Minute
	speechMaxRetries = 4
)

// SpeechClient wraps Cloud Speech long-running transcription.
type SpeechClient struct {
	client *speech.Client
	log    *logger.Logger
}

// NewSpeechClient creates a Speech connector using ambient GCP credentials.
func NewSpeechClient(ctx context.Context, log *logger.Logger) (*SpeechClient, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &SpeechClient{client: c, log: log}, nil
}

// Close releases the underlying connection.
func (s *SpeechClient) Close() error {
	return s.client.Close()
}

// Transcribe runs LongRunningRecognize over the audio bytes and returns the
// joined transcript. Transient grpc errors are retried with backoff.
func (s *SpeechClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, speechTimeout)
	defer cancel()

	req := &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               "en-US",
			Encoding:                   inferEncoding(mimeType),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.recognizeWithRetry(ctx, req)
	if err != nil {
		s.log.UpstreamError("speech", "longrunningrecognize", err)
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if result == nil || len(result.Alternatives) == 0 || result.Alternatives[0] == nil {
			continue
		}
		text := strings.TrimSpace(result.Alternatives[0].Transcript)
		if text == "" {
			continue
		}
		if transcript.Len() > 0 {
			transcript.WriteByte(' ')
		}
		transcript.WriteString(text)
	}

	return transcript.String(), nil
}

func (s *SpeechClient) recognizeWithRetry(ctx context.Context, req *speechpb.LongRunningRecognizeRequest) (*speechpb.LongRunningRecognizeResponse, error) {
	backoff := 750 * time.Millisecond
	var last error

	for attempt := 0; attempt <= speechMaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		op, err := s.client.LongRunningRecognize(ctx, req)
		if err == nil {
			resp, waitErr := op.Wait(ctx)
			if waitErr == nil {
				return resp, nil
			}
			err = waitErr
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == speechMaxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, last
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mpeg") || strings.Contains(m, "mp3"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus") || strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(m, "amr"):
		return speechpb.RecognitionConfig_AMR
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
