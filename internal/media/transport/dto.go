// Package transport defines request/response DTOs for media analysis.
package transport

// Analysis status values. partial_success means one of the independent
// signals failed but a usable verdict was still produced.
const (
	StatusSuccess = "success"
	StatusPartial = "partial_success"
	StatusError   = "error"
)

// manipulationThreshold is the score at which media is flagged.
const ManipulationThreshold = 0.5

// MediaURLRequest is the JSON alternative to a multipart upload.
type MediaURLRequest struct {
	MediaURL string `json:"media_url" validate:"required,url,max=2048"`
}

// SafeSearchResult carries Vision safe-search likelihoods as lowercase
// strings (unknown, very_unlikely, unlikely, possible, likely, very_likely).
type SafeSearchResult struct {
	Adult    string `json:"adult"`
	Spoof    string `json:"spoof"`
	Medical  string `json:"medical"`
	Violence string `json:"violence"`
	Racy     string `json:"racy"`
}

// WebPage is a page that embeds a matching image.
type WebPage struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// WebDetectionResult summarizes Vision web detection for an image.
type WebDetectionResult struct {
	FullMatches     int       `json:"full_matches"`
	PartialMatches  int       `json:"partial_matches"`
	PagesWithImage  []WebPage `json:"pages_with_image,omitempty"`
	VisuallySimilar int       `json:"visually_similar"`
}

// EXIFResult summarizes the metadata scan of an uploaded image.
type EXIFResult struct {
	Software          string `json:"software,omitempty"`
	CameraMake        string `json:"camera_make,omitempty"`
	CameraModel       string `json:"camera_model,omitempty"`
	MissingCameraMake bool   `json:"missing_camera_make"`
	HasEXIF           bool   `json:"has_exif"`
}

// ImageModelVerdict is the JSON the model emits for an image.
type ImageModelVerdict struct {
	AIGeneratedScore       float64  `json:"ai_generated_score"`
	Description            string   `json:"description"`
	ManipulationIndicators []string `json:"manipulation_indicators"`
	ContextAnalysis        string   `json:"context_analysis"`
}

// ImageAnalysisResponse is the merged image verdict.
type ImageAnalysisResponse struct {
	ObjectKey              string              `json:"object_key"`
	Status                 string              `json:"status"`
	AIGeneratedScore       float64             `json:"ai_generated_score"`
	Manipulated            bool                `json:"manipulated"`
	Description            string              `json:"description,omitempty"`
	ManipulationIndicators []string            `json:"manipulation_indicators,omitempty"`
	ContextAnalysis        string              `json:"context_analysis,omitempty"`
	SafeSearch             *SafeSearchResult   `json:"safe_search,omitempty"`
	WebDetection           *WebDetectionResult `json:"web_detection,omitempty"`
	EXIF                   *EXIFResult         `json:"exif,omitempty"`
	Warnings               []string            `json:"warnings,omitempty"`
}

// VideoModelVerdict is the JSON the model emits for a video.
type VideoModelVerdict struct {
	ManipulationScore      float64  `json:"manipulation_score"`
	DeepfakeIndicators     []string `json:"deepfake_indicators"`
	AudioVisualConsistency string   `json:"audio_visual_consistency"`
	Description            string   `json:"description"`
}

// VideoAnalysisResponse is the video verdict.
type VideoAnalysisResponse struct {
	ObjectKey              string   `json:"object_key"`
	Status                 string   `json:"status"`
	ManipulationScore      float64  `json:"manipulation_score"`
	Manipulated            bool     `json:"manipulated"`
	DeepfakeIndicators     []string `json:"deepfake_indicators,omitempty"`
	AudioVisualConsistency string   `json:"audio_visual_consistency,omitempty"`
	Description            string   `json:"description,omitempty"`
}

// AudioModelVerdict is the JSON the model emits for an audio transcript.
type AudioModelVerdict struct {
	ScamScore         float64  `json:"scam_score"`
	ScamIndicators    []string `json:"scam_indicators"`
	DeceptiveTactics  []string `json:"deceptive_tactics"`
	TranscriptSummary string   `json:"transcript_summary"`
}

// AudioAnalysisResponse is the audio verdict.
type AudioAnalysisResponse struct {
	ObjectKey         string   `json:"object_key"`
	Status            string   `json:"status"`
	Transcript        string   `json:"transcript,omitempty"`
	ScamScore         float64  `json:"scam_score"`
	LikelyScam        bool     `json:"likely_scam"`
	ScamIndicators    []string `json:"scam_indicators,omitempty"`
	DeceptiveTactics  []string `json:"deceptive_tactics,omitempty"`
	TranscriptSummary string   `json:"transcript_summary,omitempty"`
}

// DeepfakeResponse is the dedicated video classifier result.
type DeepfakeResponse struct {
	Label         string  `json:"label"`
	RealScore     float64 `json:"real_score"`
	DeepfakeScore float64 `json:"deepfake_score"`
	Detail        string  `json:"detail,omitempty"`
}
