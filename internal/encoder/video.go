package encoder

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// EncodeVideo stitches the numbered frame files matching pattern (an
// ffmpeg printf-style pattern like dir/frame_%04d.png) into a video at
// outPath. The container follows the output extension. ffmpeg must be on
// PATH; there is no fallback.
func EncodeVideo(pattern string, startNumber, fps int, outPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found on PATH: %w", err)
	}

	args := []string{
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-start_number", strconv.Itoa(startNumber),
		"-i", pattern,
		"-pix_fmt", "yuv420p",
		outPath,
	}

	cmd := exec.Command("ffmpeg", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
