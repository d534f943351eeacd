package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Show opens path with the platform's default image viewer.
// The viewer is started detached; Show does not wait for it to exit.
func Show(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open image viewer: %w", err)
	}

	return nil
}
