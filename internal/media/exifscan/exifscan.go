// Package exifscan inspects image metadata for manipulation signals:
// editing software tags and the absence of camera provenance.
package exifscan

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"

	"truthscope_backend/internal/media/transport"
)

// Editing tools whose presence in the Software tag suggests post-processing.
var editingSoftware = []string{
	"photoshop",
	"gimp",
	"lightroom",
	"affinity",
	"pixelmator",
	"canva",
	"snapseed",
}

// Scan decodes EXIF metadata from the image bytes. Images with no EXIF at
// all (typical for screenshots, AI output, and re-encoded uploads) report
// HasEXIF=false and MissingCameraMake=true.
func Scan(img []byte) transport.EXIFResult {
	x, err := exif.Decode(bytes.NewReader(img))
	if err != nil {
		return transport.EXIFResult{MissingCameraMake: true}
	}

	result := transport.EXIFResult{HasEXIF: true}
	result.Software = stringField(x, exif.Software)
	result.CameraMake = stringField(x, exif.Make)
	result.CameraModel = stringField(x, exif.Model)
	result.MissingCameraMake = result.CameraMake == ""
	return result
}

// Indicators derives human-readable manipulation hints from a scan.
func Indicators(result transport.EXIFResult) []string {
	var hints []string

	if !result.HasEXIF {
		hints = append(hints, "image carries no EXIF metadata")
	} else if result.MissingCameraMake {
		hints = append(hints, "EXIF present but camera make is missing")
	}

	if sw := normalizeSoftware(result.Software); sw != "" {
		hints = append(hints, "edited with "+sw)
	}
	return hints
}

func normalizeSoftware(software string) string {
	if software == "" {
		return ""
	}
	lower := bytes.ToLower([]byte(software))
	for _, tool := range editingSoftware {
		if bytes.Contains(lower, []byte(tool)) {
			return software
		}
	}
	return ""
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return value
}
