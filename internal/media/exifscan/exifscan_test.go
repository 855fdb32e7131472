package exifscan

import (
	"testing"

	"truthscope_backend/internal/media/transport"
)

func TestScan_NoEXIF(t *testing.T) {
	// A bare PNG header carries no EXIF block at all.
	result := Scan([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A})

	if result.HasEXIF {
		t.Fatal("expected HasEXIF=false for image without metadata")
	}
	if !result.MissingCameraMake {
		t.Fatal("expected MissingCameraMake=true for image without metadata")
	}
}

func TestIndicators(t *testing.T) {
	cases := []struct {
		name   string
		result transport.EXIFResult
		want   []string
	}{
		{
			name:   "no exif at all",
			result: transport.EXIFResult{MissingCameraMake: true},
			want:   []string{"image carries no EXIF metadata"},
		},
		{
			name:   "exif without camera make",
			result: transport.EXIFResult{HasEXIF: true, MissingCameraMake: true},
			want:   []string{"EXIF present but camera make is missing"},
		},
		{
			name:   "editing software detected",
			result: transport.EXIFResult{HasEXIF: true, CameraMake: "Canon", Software: "Adobe Photoshop 25.0"},
			want:   []string{"edited with Adobe Photoshop 25.0"},
		},
		{
			name:   "camera firmware is not flagged",
			result: transport.EXIFResult{HasEXIF: true, CameraMake: "Canon", Software: "Canon EOS R5 Firmware 1.8"},
			want:   nil,
		},
		{
			name:   "missing make and editor stack",
			result: transport.EXIFResult{HasEXIF: true, MissingCameraMake: true, Software: "GIMP 2.10"},
			want:   []string{"EXIF present but camera make is missing", "edited with GIMP 2.10"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Indicators(tc.result)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("hint %d: expected %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}
