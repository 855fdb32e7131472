package storage

import (
	"context"
	"io"
	"testing"
)

// uploadOnlyStore covers exactly the operations the media pipeline uses.
type uploadOnlyStore struct{}

func (uploadOnlyStore) UploadFile(_ context.Context, _, _, _, _ string, _ io.Reader, _ int64) (string, error) {
	return "", nil
}
func (uploadOnlyStore) DeleteObject(_ context.Context, _, _ string) error    { return nil }
func (uploadOnlyStore) EnsureBucketExists(_ context.Context, _ string) error { return nil }

var _ StorageService = uploadOnlyStore{}

func TestContentTypeHelpers(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		image       bool
		video       bool
		audio       bool
	}{
		{"jpeg", "image/jpeg", true, false, false},
		{"uppercase image", "IMAGE/PNG", true, false, false},
		{"mp4 video", "video/mp4", false, true, false},
		{"mp3 audio", "audio/mpeg", false, false, true},
		{"text", "text/html", false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsImageContentType(tc.contentType); got != tc.image {
				t.Fatalf("IsImageContentType(%q) = %v, want %v", tc.contentType, got, tc.image)
			}
			if got := IsVideoContentType(tc.contentType); got != tc.video {
				t.Fatalf("IsVideoContentType(%q) = %v, want %v", tc.contentType, got, tc.video)
			}
			if got := IsAudioContentType(tc.contentType); got != tc.audio {
				t.Fatalf("IsAudioContentType(%q) = %v, want %v", tc.contentType, got, tc.audio)
			}
		})
	}
}
