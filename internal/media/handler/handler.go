// Package handler provides HTTP handlers for media analysis uploads.
package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"truthscope_backend/internal/media/service"
	"truthscope_backend/internal/media/transport"
	"truthscope_backend/platform/httpkit"
	"truthscope_backend/platform/validator"
)

// Handler handles HTTP requests for media analysis.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new media handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// AnalyzeImage runs the image forensics pipeline.
// POST /api/v1/analyze/image
func (h *Handler) AnalyzeImage(c *gin.Context) {
	up, ok := h.resolveUpload(c, "file")
	if !ok {
		return
	}

	result, err := h.svc.AnalyzeImage(c.Request.Context(), up)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AnalyzeVideo runs the video manipulation pipeline.
// POST /api/v1/analyze/video
func (h *Handler) AnalyzeVideo(c *gin.Context) {
	up, ok := h.resolveUpload(c, "file")
	if !ok {
		return
	}

	result, err := h.svc.AnalyzeVideo(c.Request.Context(), up)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AnalyzeAudio runs the audio scam pipeline.
// POST /api/v1/analyze/audio
func (h *Handler) AnalyzeAudio(c *gin.Context) {
	up, ok := h.resolveUpload(c, "file")
	if !ok {
		return
	}

	result, err := h.svc.AnalyzeAudio(c.Request.Context(), up)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ClassifyDeepfake runs the binary deepfake classifier on a video upload.
// POST /api/v1/deepfake/video
func (h *Handler) ClassifyDeepfake(c *gin.Context) {
	up, ok := h.resolveUpload(c, "video")
	if !ok {
		return
	}

	result, err := h.svc.ClassifyDeepfake(c.Request.Context(), up)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// resolveUpload reads the media item from a multipart file field or, for
// JSON bodies, fetches the media_url. Writes the error response itself when
// resolution fails.
func (h *Handler) resolveUpload(c *gin.Context, field string) (service.Upload, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.readMultipart(c, field)
	}

	var req transport.MediaURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "provide a multipart file or a media_url", nil)
		return service.Upload{}, false
	}
	if err := h.val.Struct(req); err != nil {
		_ = httpkit.HandleError(c, err)
		return service.Upload{}, false
	}

	up, err := h.svc.FetchRemote(c.Request.Context(), req.MediaURL)
	if err != nil {
		_ = httpkit.HandleError(c, err)
		return service.Upload{}, false
	}
	return up, true
}

func (h *Handler) readMultipart(c *gin.Context, field string) (service.Upload, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing file field "+field, nil)
		return service.Upload{}, false
	}
	if fileHeader.Size > h.svc.MaxSize() {
		httpkit.Error(c, http.StatusBadRequest, "media exceeds the maximum allowed size", nil)
		return service.Upload{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read uploaded file", nil)
		return service.Upload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.svc.MaxSize()+1))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read uploaded file", nil)
		return service.Upload{}, false
	}
	if int64(len(data)) > h.svc.MaxSize() {
		httpkit.Error(c, http.StatusBadRequest, "media exceeds the maximum allowed size", nil)
		return service.Upload{}, false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return service.Upload{
		Data:        data,
		ContentType: contentType,
		Filename:    fileHeader.Filename,
	}, true
}
