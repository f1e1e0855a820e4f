package editor

import (
	"errors"
	"reflect"
	"testing"
)

func newTestOpener(configured string, env map[string]string, onPath []string, goos string) *Opener {
	o := NewOpener(configured)
	o.getenv = func(k string) string { return env[k] }
	o.lookPath = func(name string) (string, error) {
		for _, p := range onPath {
			if p == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	o.goos = goos
	return o
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        map[string]string
		onPath     []string
		goos       string
		wantArgs   []string
		wantErr    bool
	}{
		{
			name:       "configured editor with flags",
			configured: "code --wait",
			env:        map[string]string{"EDITOR": "vim"},
			wantArgs:   []string{"code", "--wait", "/tmp/AGENTS.md"},
		},
		{
			name:     "visual before editor",
			env:      map[string]string{"VISUAL": "hx", "EDITOR": "vim"},
			wantArgs: []string{"hx", "/tmp/AGENTS.md"},
		},
		{
			name:     "editor variable",
			env:      map[string]string{"EDITOR": "nano -w"},
			wantArgs: []string{"nano", "-w", "/tmp/AGENTS.md"},
		},
		{
			name:     "first editor on path",
			onPath:   []string{"vi", "nano"},
			wantArgs: []string{"/usr/bin/vi", "/tmp/AGENTS.md"},
		},
		{
			name:     "xdg-open fallback",
			onPath:   []string{"xdg-open"},
			goos:     "linux",
			wantArgs: []string{"xdg-open", "/tmp/AGENTS.md"},
		},
		{
			name:     "macOS fallback",
			goos:     "darwin",
			wantArgs: []string{"open", "/tmp/AGENTS.md"},
		},
		{
			name:    "nothing available",
			goos:    "linux",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOpener(tt.configured, tt.env, tt.onPath, tt.goos)
			cmd, err := o.Command("/tmp/AGENTS.md")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Errorf("Command() args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}
