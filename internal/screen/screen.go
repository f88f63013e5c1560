// Package screen captures screenshots and probes the display size so the
// planner can see what the user sees.
package screen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Size is the display resolution in pixels.
type Size struct {
	Width  int
	Height int
}

// Capture grabs the current screen as PNG bytes. It tries scrot first and
// falls back to ImageMagick's import. Returns nil on headless hosts.
type Capture struct {
	tmpDir   string
	headless bool
}

func New() *Capture {
	return &Capture{
		tmpDir:   os.TempDir(),
		headless: os.Getenv("DISPLAY") == "",
	}
}

// Headless reports whether screenshots are unavailable.
func (c *Capture) Headless() bool {
	return c.headless
}

// Screenshot writes a screenshot to a temp file and returns its bytes.
// On headless hosts it returns nil without error; the planner works
// without an image.
func (c *Capture) Screenshot(ctx context.Context) ([]byte, error) {
	if c.headless {
		return nil, nil
	}

	path := filepath.Join(c.tmpDir, "airemote_screen.png")
	defer func() { _ = os.Remove(path) }()

	if err := exec.CommandContext(ctx, "scrot", "--overwrite", path).Run(); err != nil {
		// scrot not installed or failed; try ImageMagick
		if err := exec.CommandContext(ctx, "import", "-window", "root", path).Run(); err != nil {
			return nil, fmt.Errorf("screenshot capture failed: %w", err)
		}
	}

	return os.ReadFile(path)
}

// DisplaySize probes the display geometry via xdotool. Headless hosts get
// a zero size.
func (c *Capture) DisplaySize(ctx context.Context) Size {
	if c.headless {
		return Size{}
	}

	out, err := exec.CommandContext(ctx, "xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return Size{}
	}

	fields := strings.Fields(strings.TrimSpace(string(out)))
	if len(fields) != 2 {
		return Size{}
	}
	w, _ := strconv.Atoi(fields[0])
	h, _ := strconv.Atoi(fields[1])
	return Size{Width: w, Height: h}
}
