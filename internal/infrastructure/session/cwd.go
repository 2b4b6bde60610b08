package session

import (
	"net/url"
	"strings"

	"github.com/doeshing/shai-term/internal/pkg/filesystem"
)

const (
	pwdMarker = "PWD="
	osc7Start = "\x1b]7;"
)

// inferCwd scans shell output for PWD=<path>\n assignments and OSC 7
// (ESC ]7;file://host/path) reports and returns the last one, by position,
// that names an existing directory. Incomplete markers at the end of a chunk
// are ignored. Shells that emit neither leave the directory unchanged.
func inferCwd(output string) (string, bool) {
	var found string
	for _, candidate := range cwdCandidates(output) {
		if filesystem.DirExists(candidate) {
			found = candidate
		}
	}
	return found, found != ""
}

// cwdCandidates returns complete markers in the order they appear.
func cwdCandidates(output string) []string {
	var out []string
	rest := output
	for {
		pwd := indexPwdMarker(rest)
		osc := strings.Index(rest, osc7Start)
		switch {
		case pwd < 0 && osc < 0:
			return out
		case osc < 0 || (pwd >= 0 && pwd < osc):
			value := rest[pwd+len(pwdMarker):]
			end := strings.IndexByte(value, '\n')
			if end < 0 {
				return out
			}
			if path := strings.TrimRight(value[:end], "\r"); path != "" {
				out = append(out, path)
			}
			rest = value[end:]
		default:
			body := rest[osc+len(osc7Start):]
			end := strings.IndexAny(body, "\x07\x1b")
			if end < 0 {
				return out
			}
			if u, err := url.Parse(body[:end]); err == nil && u.Scheme == "file" && u.Path != "" {
				out = append(out, u.Path)
			}
			rest = body[end:]
		}
	}
}

// indexPwdMarker finds PWD= not preceded by a name byte, skipping OLDPWD= and the like.
func indexPwdMarker(s string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], pwdMarker)
		if idx < 0 {
			return -1
		}
		idx += offset
		if idx == 0 || !isNameByte(s[idx-1]) {
			return idx
		}
		offset = idx + len(pwdMarker)
	}
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
