package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"ruleweaver/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	// configured overrides $EDITOR; it may carry arguments ("code --wait")
	configured string
	lookPath   func(string) (string, error)
	getenv     func(string) string
	goos       string
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener. configured may be empty.
func NewOpener(configured string) *Opener {
	return &Opener{
		configured: configured,
		lookPath:   exec.LookPath,
		getenv:     os.Getenv,
		goos:       runtime.GOOS,
	}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.editorArgv()
	if len(argv) == 0 {
		return o.systemCommand(path)
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// editorArgv returns the editor command split into words
func (o *Opener) editorArgv() []string {
	for _, candidate := range []string{o.configured, o.getenv("VISUAL"), o.getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}

	// Try common editors
	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}

// systemCommand hands the file to the desktop's default application
func (o *Opener) systemCommand(path string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux":
		if _, err := o.lookPath("xdg-open"); err == nil {
			return exec.Command("xdg-open", path), nil
		}
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path), nil
	}
	return nil, fmt.Errorf("no editor found: set $EDITOR or the editor config key")
}
