// Package probe counts decodable frames in video files with ffprobe.
package probe

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// EnsureFFprobe verifies ffprobe is available on PATH.
func EnsureFFprobe() error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return fmt.Errorf("ffprobe not found on PATH (install ffmpeg to use the count command): %w", err)
	}
	return nil
}

// CountFrames decodes the first video stream's headers and returns its total
// frame count. Raw h264 streams carry no frame-count metadata, so ffprobe
// must walk the whole stream (-count_frames).
func CountFrames(videoPath string) (int, error) {
	out, err := ffmpeg.Probe(videoPath, ffmpeg.KwArgs{
		"v":              "error",
		"select_streams": "v:0",
		"count_frames":   "",
	})
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", videoPath, err)
	}
	return parseFrameCount(out, videoPath)
}

func parseFrameCount(probeJSON, videoPath string) (int, error) {
	value := gjson.Get(probeJSON, "streams.0.nb_read_frames")
	if !value.Exists() {
		return 0, fmt.Errorf("no video stream frame count reported for %s", videoPath)
	}
	frames, err := strconv.Atoi(value.String())
	if err != nil {
		return 0, fmt.Errorf("unexpected frame count %q for %s", value.String(), videoPath)
	}
	if frames <= 0 {
		return 0, fmt.Errorf("no decodable frames in %s", videoPath)
	}
	return frames, nil
}
