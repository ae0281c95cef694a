package plot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// WriteTempFile writes html to a new plot-YYYYmmdd-HHMMSS-*.html file in the
// temporary directory and returns its file:// URL.
func WriteTempFile(html string) (string, error) {
	f, err := os.CreateTemp("", "plot-"+time.Now().Format("20060102-150405")+"-*.html")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(html); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return "file://" + f.Name(), nil
}

// CommandLine returns the foxplot invocation that plots the same series.
// Labels of one axis are joined with commas.
func CommandLine(file, timeLabel string, left, right []string) string {
	args := []string{"foxplot"}
	if file != "" {
		args = append(args, file)
	}
	if timeLabel != "" {
		args = append(args, "-t", timeLabel)
	}
	if len(left) > 0 {
		args = append(args, "-l", strings.Join(left, ","))
	}
	if len(right) > 0 {
		args = append(args, "-r", strings.Join(right, ","))
	}

	return strings.Join(args, " ")
}

func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// OpenBrowser asks the desktop to open url in a web browser. It does not
// wait for the browser to exit.
func OpenBrowser(ctx context.Context, url string) error {
	name, args := browserCommand(runtime.GOOS, url)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}

	go func() { _ = cmd.Wait() }()

	return nil
}
