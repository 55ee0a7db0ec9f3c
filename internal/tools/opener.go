package tools

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/shinji-kodama/new-project/internal/output"
	"github.com/shinji-kodama/new-project/internal/proc"
)

// OpenCommand returns the platform command that opens url in the default
// handler (usually the browser).
func OpenCommand(goos, url string) proc.Command {
	switch goos {
	case "darwin":
		return proc.Command{Path: "open", Args: []string{url}}
	case "windows":
		return proc.Command{Path: "rundll32", Args: []string{"url.dll,FileProtocolHandler", url}}
	default:
		return proc.Command{Path: "xdg-open", Args: []string{url}}
	}
}

// SystemOpener opens URLs with the operating system's default handler.
type SystemOpener struct {
	goos string
}

// NewSystemOpener creates an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS}
}

// Open hands url to the platform opener.
func (o *SystemOpener) Open(ctx context.Context, url string) error {
	if _, err := proc.Run(ctx, OpenCommand(o.goos, url)); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}

// DryOpener prints the URLs instead of opening them.
type DryOpener struct {
	Out io.Writer
}

// Open prints the URL.
func (d *DryOpener) Open(_ context.Context, url string) error {
	output.PrintDry(d.Out, "Open URL "+url)
	return nil
}
