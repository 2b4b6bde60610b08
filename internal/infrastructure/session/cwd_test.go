//go:build !windows

package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCwd(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist")

	tests := []struct {
		name   string
		output string
		want   string
		found  bool
	}{
		{name: "no marker", output: "total 0\r\n", found: false},
		{name: "pwd line", output: "PWD=" + dir + "\r\n$ ", want: dir, found: true},
		{name: "pwd without newline ignored", output: "PWD=" + dir, found: false},
		{name: "pwd split mid path", output: "PWD=" + other + "\nPWD=" + dir, want: other, found: true},
		{name: "missing directory ignored", output: "PWD=" + missing + "\n", found: false},
		{name: "oldpwd skipped", output: "OLDPWD=" + dir + "\n", found: false},
		{name: "last existing wins", output: "PWD=" + dir + "\nPWD=" + other + "\nPWD=" + missing + "\n", want: other, found: true},
		{name: "osc7 bel", output: "\x1b]7;file://host" + dir + "\x07$ ", want: dir, found: true},
		{name: "osc7 st", output: "\x1b]7;file://host" + other + "\x1b\\", want: other, found: true},
		{name: "osc7 unterminated", output: "\x1b]7;file://host" + dir, found: false},
		{name: "pwd after osc7 wins", output: "\x1b]7;file://host" + other + "\x07PWD=" + dir + "\n", want: dir, found: true},
		{name: "osc7 after pwd wins", output: "PWD=" + dir + "\n\x1b]7;file://host" + other + "\x07", want: other, found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inferCwd(tt.output)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShellArgs(t *testing.T) {
	assert.Equal(t, []string{"-i"}, shellArgs("/bin/bash"))
	assert.Equal(t, []string{"-i"}, shellArgs("/usr/local/bin/zsh"))
	assert.Nil(t, shellArgs("/bin/sh"))
	assert.Equal(t, []string{"-NoLogo", "-NoExit"}, shellArgs(`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`))
}
