package ports

import "os/exec"

// EditorOpener opens target files for manual conflict inspection
type EditorOpener interface {
	OpenFile(path string) error

	// Command returns the editor process without starting it, for tea.ExecProcess
	Command(path string) (*exec.Cmd, error)
}
