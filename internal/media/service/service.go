// Package service implements the paid-tier media analysis pipelines: image
// forensics, video deepfake assessment, and audio scam detection.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"truthscope_backend/internal/adapters/storage"
	"truthscope_backend/internal/events"
	"truthscope_backend/internal/media/client"
	"truthscope_backend/internal/media/exifscan"
	"truthscope_backend/internal/media/transport"
	"truthscope_backend/platform/ai/gemini"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
)

// Object key folders per media kind.
const (
	folderImages = "images"
	folderVideos = "videos"
	folderAudio  = "audio"
)

// spoofScoreFloor is the minimum ai_generated_score when Vision rates the
// image spoof LIKELY or VERY_LIKELY.
const spoofScoreFloor = 0.7

// Upload is one media item ready for analysis.
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Service runs the media pipelines. Vision and Speech may be nil when the
// GCP connectors are unavailable; the pipelines degrade accordingly.
type Service struct {
	storage storage.StorageService
	bucket  string
	vision  *client.VisionClient
	speech  *client.SpeechClient
	model   *gemini.Model
	fetcher *http.Client
	maxSize int64
	bus     events.Bus
	log     *logger.Logger
}

// Deps bundles the media service dependencies.
type Deps struct {
	Storage      storage.StorageService
	Bucket       string
	Vision       *client.VisionClient
	Speech       *client.SpeechClient
	Model        *gemini.Model
	FetchTimeout time.Duration
	MaxSize      int64
	Bus          events.Bus
	Log          *logger.Logger
}

// New creates the media service.
func New(deps Deps) *Service {
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = 30 * time.Second
	}
	if deps.MaxSize <= 0 {
		deps.MaxSize = 25 << 20
	}

	return &Service{
		storage: deps.Storage,
		bucket:  deps.Bucket,
		vision:  deps.Vision,
		speech:  deps.Speech,
		model:   deps.Model,
		fetcher: &http.Client{Timeout: deps.FetchTimeout},
		maxSize: deps.MaxSize,
		bus:     deps.Bus,
		log:     deps.Log,
	}
}

// FetchRemote downloads a media item from a URL with size and time limits.
func (s *Service) FetchRemote(ctx context.Context, rawURL string) (Upload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Upload{}, apperr.BadRequest("invalid media URL")
	}

	resp, err := s.fetcher.Do(req)
	if err != nil {
		return Upload{}, apperr.Upstream("could not fetch media", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Upload{}, apperr.Upstream("could not fetch media",
			fmt.Errorf("media fetch status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return Upload{}, apperr.Upstream("could not fetch media", err)
	}
	if int64(len(data)) > s.maxSize {
		return Upload{}, apperr.Validation("media exceeds the maximum allowed size")
	}
	if len(data) == 0 {
		return Upload{}, apperr.BadRequest("media URL returned no content")
	}

	return Upload{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    "remote",
	}, nil
}

// AnalyzeImage runs the image forensics pipeline: Vision safe-search and web
// detection, EXIF scan, and the multimodal model, merged into one verdict.
func (s *Service) AnalyzeImage(ctx context.Context, up Upload) (transport.ImageAnalysisResponse, error) {
	if !storage.IsImageContentType(up.ContentType) {
		return transport.ImageAnalysisResponse{}, apperr.Validation("file is not a supported image type")
	}

	objectKey, err := s.store(ctx, folderImages, up)
	if err != nil {
		return transport.ImageAnalysisResponse{}, err
	}

	var (
		annotations *client.ImageAnnotations
		visionErr   error
		exifResult  transport.EXIFResult
		verdict     transport.ImageModelVerdict
		modelErr    error
	)

	// Each signal runs independently; failures are merged into the status
	// instead of aborting the other signals.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.vision == nil {
			visionErr = fmt.Errorf("vision connector unavailable")
			return nil
		}
		annotations, visionErr = s.vision.Annotate(gctx, up.Data)
		return nil
	})
	g.Go(func() error {
		exifResult = exifscan.Scan(up.Data)
		return nil
	})
	g.Go(func() error {
		verdict, modelErr = s.imageVerdict(gctx, up)
		return nil
	})
	_ = g.Wait()

	if visionErr != nil && modelErr != nil {
		return transport.ImageAnalysisResponse{}, apperr.Upstream("image analysis unavailable", modelErr)
	}

	response := transport.ImageAnalysisResponse{
		ObjectKey:              objectKey,
		Status:                 transport.StatusSuccess,
		AIGeneratedScore:       verdict.AIGeneratedScore,
		Description:            verdict.Description,
		ManipulationIndicators: verdict.ManipulationIndicators,
		ContextAnalysis:        verdict.ContextAnalysis,
		EXIF:                   &exifResult,
	}
	response.ManipulationIndicators = append(response.ManipulationIndicators, exifscan.Indicators(exifResult)...)

	if visionErr != nil {
		response.Status = transport.StatusPartial
		response.Warnings = append(response.Warnings, "vision analysis unavailable")
	} else if annotations != nil {
		response.SafeSearch = &annotations.SafeSearch
		response.WebDetection = &annotations.WebDetection
		if annotations.SpoofLikely && response.AIGeneratedScore < spoofScoreFloor {
			response.AIGeneratedScore = spoofScoreFloor
		}
	}
	if modelErr != nil {
		response.Status = transport.StatusPartial
		response.Warnings = append(response.Warnings, "model analysis unavailable")
	}

	response.Manipulated = response.AIGeneratedScore >= transport.ManipulationThreshold

	s.publish(ctx, "image", objectKey, response.AIGeneratedScore, response.Status)
	return response, nil
}

// AnalyzeVideo runs the multimodal model over the video bytes.
func (s *Service) AnalyzeVideo(ctx context.Context, up Upload) (transport.VideoAnalysisResponse, error) {
	if !storage.IsVideoContentType(up.ContentType) {
		return transport.VideoAnalysisResponse{}, apperr.Validation("file is not a supported video type")
	}

	objectKey, err := s.store(ctx, folderVideos, up)
	if err != nil {
		return transport.VideoAnalysisResponse{}, err
	}

	response, err := s.videoVerdict(ctx, objectKey, up)
	if err != nil {
		return transport.VideoAnalysisResponse{}, err
	}

	s.publish(ctx, "video", objectKey, response.ManipulationScore, response.Status)
	return response, nil
}

// AnalyzeAudio transcribes the recording and assesses the transcript for
// scam patterns.
func (s *Service) AnalyzeAudio(ctx context.Context, up Upload) (transport.AudioAnalysisResponse, error) {
	if !storage.IsAudioContentType(up.ContentType) {
		return transport.AudioAnalysisResponse{}, apperr.Validation("file is not a supported audio type")
	}
	if s.speech == nil {
		return transport.AudioAnalysisResponse{}, apperr.Upstream("speech transcription unavailable", nil)
	}

	objectKey, err := s.store(ctx, folderAudio, up)
	if err != nil {
		return transport.AudioAnalysisResponse{}, err
	}

	transcript, err := s.speech.Transcribe(ctx, up.Data, up.ContentType)
	if err != nil {
		return transport.AudioAnalysisResponse{}, apperr.Upstream("speech transcription unavailable", err)
	}

	response := transport.AudioAnalysisResponse{
		ObjectKey:  objectKey,
		Status:     transport.StatusSuccess,
		Transcript: transcript,
	}

	if transcript == "" {
		response.Status = transport.StatusPartial
		response.TranscriptSummary = "no speech detected in the recording"
		s.publish(ctx, "audio", objectKey, 0, response.Status)
		return response, nil
	}

	raw, err := s.model.GenerateText(ctx, []*genai.Part{
		genai.NewPartFromText(audioPrompt + transcript),
	}, gemini.JSONConfig())
	if err != nil {
		return transport.AudioAnalysisResponse{}, apperr.Upstream("analysis model unavailable", err)
	}

	verdict, err := decodeModel[transport.AudioModelVerdict](raw)
	if err != nil {
		s.log.UpstreamError("gemini", "audio verdict decode", err)
		return transport.AudioAnalysisResponse{}, apperr.Internal("the model returned an invalid verdict")
	}

	response.ScamScore = clampScore(verdict.ScamScore)
	response.LikelyScam = response.ScamScore >= transport.ManipulationThreshold
	response.ScamIndicators = verdict.ScamIndicators
	response.DeceptiveTactics = verdict.DeceptiveTactics
	response.TranscriptSummary = verdict.TranscriptSummary

	s.publish(ctx, "audio", objectKey, response.ScamScore, response.Status)
	return response, nil
}

// ClassifyDeepfake runs the video pipeline and folds the result into a
// binary label. The stored object is temporary and removed on completion.
func (s *Service) ClassifyDeepfake(ctx context.Context, up Upload) (transport.DeepfakeResponse, error) {
	analysis, err := s.AnalyzeVideo(ctx, up)
	if err != nil {
		return transport.DeepfakeResponse{}, err
	}

	if delErr := s.storage.DeleteObject(context.WithoutCancel(ctx), s.bucket, analysis.ObjectKey); delErr != nil {
		s.log.UpstreamError("minio", "delete temp object", delErr)
	}

	response := transport.DeepfakeResponse{
		Label:         "real",
		RealScore:     1 - analysis.ManipulationScore,
		DeepfakeScore: analysis.ManipulationScore,
		Detail:        analysis.Description,
	}
	if analysis.Manipulated {
		response.Label = "deepfake"
	}
	return response, nil
}

// MaxSize returns the configured upload size limit in bytes.
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

func (s *Service) store(ctx context.Context, folder string, up Upload) (string, error) {
	if int64(len(up.Data)) > s.maxSize {
		return "", apperr.Validation("media exceeds the maximum allowed size")
	}

	key, err := s.storage.UploadFile(ctx, s.bucket, folder, up.Filename, up.ContentType,
		bytes.NewReader(up.Data), int64(len(up.Data)))
	if err != nil {
		return "", apperr.Upstream("could not store media", err)
	}
	return key, nil
}

func (s *Service) imageVerdict(ctx context.Context, up Upload) (transport.ImageModelVerdict, error) {
	raw, err := s.model.GenerateText(ctx, []*genai.Part{
		genai.NewPartFromText(imagePrompt),
		{InlineData: &genai.Blob{MIMEType: up.ContentType, Data: up.Data}},
	}, gemini.JSONConfig())
	if err != nil {
		return transport.ImageModelVerdict{}, err
	}

	verdict, err := decodeModel[transport.ImageModelVerdict](raw)
	if err != nil {
		return transport.ImageModelVerdict{}, err
	}
	verdict.AIGeneratedScore = clampScore(verdict.AIGeneratedScore)
	return verdict, nil
}

func (s *Service) videoVerdict(ctx context.Context, objectKey string, up Upload) (transport.VideoAnalysisResponse, error) {
	raw, err := s.model.GenerateText(ctx, []*genai.Part{
		genai.NewPartFromText(videoPrompt),
		{InlineData: &genai.Blob{MIMEType: up.ContentType, Data: up.Data}},
	}, gemini.JSONConfig())
	if err != nil {
		return transport.VideoAnalysisResponse{}, apperr.Upstream("analysis model unavailable", err)
	}

	verdict, err := decodeModel[transport.VideoModelVerdict](raw)
	if err != nil {
		s.log.UpstreamError("gemini", "video verdict decode", err)
		return transport.VideoAnalysisResponse{}, apperr.Internal("the model returned an invalid verdict")
	}

	score := clampScore(verdict.ManipulationScore)
	return transport.VideoAnalysisResponse{
		ObjectKey:              objectKey,
		Status:                 transport.StatusSuccess,
		ManipulationScore:      score,
		Manipulated:            score >= transport.ManipulationThreshold,
		DeepfakeIndicators:     verdict.DeepfakeIndicators,
		AudioVisualConsistency: verdict.AudioVisualConsistency,
		Description:            verdict.Description,
	}, nil
}

func (s *Service) publish(ctx context.Context, kind, objectKey string, score float64, status string) {
	s.log.AnalysisEvent(kind, objectKey, status, false)
	s.bus.Publish(ctx, events.MediaAnalyzed{
		BaseEvent: events.NewBaseEvent(),
		Kind:      kind,
		ObjectKey: objectKey,
		Score:     score,
		Status:    status,
	})
}

func decodeModel[T any](raw string) (T, error) {
	var verdict T
	repaired := gemini.RepairJSON(raw)
	if repaired == "" {
		return verdict, fmt.Errorf("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(repaired), &verdict); err != nil {
		return verdict, fmt.Errorf("decode model output: %w", err)
	}
	return verdict, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
