package version

import (
	"runtime/debug"
	"testing"
)

func TestFillFromSettingsPrefersLdflags(t *testing.T) {
	info := BuildInfo{Commit: "abc123"}
	fillFromSettings(&info, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2025-03-01T12:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	})

	if info.Commit != "abc123" {
		t.Fatalf("expected ldflags commit to win, got %q", info.Commit)
	}
	if info.BuildDate != "2025-03-01T12:00:00Z" {
		t.Fatalf("expected vcs time, got %q", info.BuildDate)
	}
	if !info.Modified {
		t.Fatal("expected modified flag")
	}
}

func TestFillFromSettingsShortensRevision(t *testing.T) {
	var info BuildInfo
	fillFromSettings(&info, []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef0123"}})
	if info.Commit != "0123456789ab" {
		t.Fatalf("unexpected commit %q", info.Commit)
	}
}

func TestCurrent(t *testing.T) {
	info := Current()
	if info.Version != Version || info.GoVersion == "" || info.Platform == "" {
		t.Fatalf("incomplete build info %+v", info)
	}
}
