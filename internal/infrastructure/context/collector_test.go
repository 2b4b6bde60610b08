package contextcollector

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

type fixedCwd string

func (f fixedCwd) Cwd() string { return string(f) }

func TestCollectorUsesSessionCwd(t *testing.T) {
	tmp := t.TempDir()
	collector := NewCollector(fixedCwd(tmp))
	collector.environ = func() []string { return []string{"PATH=/usr/bin", "OPENAI_API_KEY=sk-secret", "EMPTY="} }

	snapshot, err := collector.Collect(context.Background(), "ls -", []string{"cd /tmp"})
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if snapshot.Cwd != tmp {
		t.Fatalf("expected cwd %s, got %s", tmp, snapshot.Cwd)
	}
	if snapshot.CurrentInput != "ls -" || len(snapshot.CommandHistory) != 1 {
		t.Fatalf("input/history not carried through: %+v", snapshot)
	}
	if snapshot.OS != runtime.GOOS {
		t.Fatalf("expected OS %s, got %s", runtime.GOOS, snapshot.OS)
	}
	if snapshot.GitBranch != "" {
		t.Fatalf("expected no git branch outside a repository, got %q", snapshot.GitBranch)
	}
	want := []string{"EMPTY", "OPENAI_API_KEY", "PATH"}
	if len(snapshot.EnvVarNames) != len(want) {
		t.Fatalf("expected %v, got %v", want, snapshot.EnvVarNames)
	}
	for i := range want {
		if snapshot.EnvVarNames[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, snapshot.EnvVarNames)
		}
	}
}

func TestCollectorFallsBackToProcessDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	snapshot, _ := NewCollector(fixedCwd("")).Collect(context.Background(), "git", nil)
	if snapshot.Cwd != wd {
		t.Fatalf("expected %s, got %s", wd, snapshot.Cwd)
	}
}

func TestInsideGitRepo(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if insideGitRepo(nested) {
		t.Fatal("expected no repository yet")
	}
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !insideGitRepo(nested) {
		t.Fatal("expected nested directory to be inside the repository")
	}
}
