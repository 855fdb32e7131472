package storage

import "strings"

// IsImageContentType checks if the content type is an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

// IsVideoContentType checks if the content type is a video.
func IsVideoContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "video/")
}

// IsAudioContentType checks if the content type is audio.
func IsAudioContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "audio/")
}
