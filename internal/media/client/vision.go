// Package client provides the Cloud Vision and Cloud Speech connectors for
// media analysis.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"truthscope_backend/internal/media/transport"
	"truthscope_backend/platform/logger"
)

const (
	visionTimeout = 60 * time.Second

	// Top pages returned in web detection summaries.
	webDetectionPageLimit = 5
)

// VisionClient wraps the Cloud Vision image annotator.
type VisionClient struct {
	client *vision.ImageAnnotatorClient
	log    *logger.Logger
}

// NewVisionClient creates a Vision connector using ambient GCP credentials.
func NewVisionClient(ctx context.Context, log *logger.Logger) (*VisionClient, error) {
	c, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &VisionClient{client: c, log: log}, nil
}

// Close releases the underlying connection.
func (v *VisionClient) Close() error {
	return v.client.Close()
}

// ImageAnnotations is the Vision signal pair used by the image pipeline.
type ImageAnnotations struct {
	SafeSearch   transport.SafeSearchResult
	WebDetection transport.WebDetectionResult
	SpoofLikely  bool
}

// Annotate runs safe-search and web detection over the image bytes.
func (v *VisionClient) Annotate(ctx context.Context, img []byte) (*ImageAnnotations, error) {
	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: img},
			Features: []*visionpb.Feature{
				{Type: visionpb.Feature_SAFE_SEARCH_DETECTION},
				{Type: visionpb.Feature_WEB_DETECTION},
			},
		}},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		v.log.UpstreamError("vision", "annotate", err)
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil, fmt.Errorf("vision annotate: empty response")
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate: %s", r0.Error.Message)
	}

	annotations := &ImageAnnotations{}
	if ss := r0.SafeSearchAnnotation; ss != nil {
		annotations.SafeSearch = transport.SafeSearchResult{
			Adult:    likelihoodString(ss.Adult),
			Spoof:    likelihoodString(ss.Spoof),
			Medical:  likelihoodString(ss.Medical),
			Violence: likelihoodString(ss.Violence),
			Racy:     likelihoodString(ss.Racy),
		}
		annotations.SpoofLikely = ss.Spoof == visionpb.Likelihood_LIKELY ||
			ss.Spoof == visionpb.Likelihood_VERY_LIKELY
	}
	if wd := r0.WebDetection; wd != nil {
		annotations.WebDetection = summarizeWebDetection(wd)
	}

	return annotations, nil
}

func summarizeWebDetection(wd *visionpb.WebDetection) transport.WebDetectionResult {
	result := transport.WebDetectionResult{
		VisuallySimilar: len(wd.VisuallySimilarImages),
	}

	for _, page := range wd.PagesWithMatchingImages {
		result.FullMatches += len(page.FullMatchingImages)
		result.PartialMatches += len(page.PartialMatchingImages)
		if len(result.PagesWithImage) < webDetectionPageLimit {
			result.PagesWithImage = append(result.PagesWithImage, transport.WebPage{
				URL:   page.Url,
				Title: page.PageTitle,
			})
		}
	}
	return result
}

func likelihoodString(l visionpb.Likelihood) string {
	return strings.ToLower(l.String())
}
