//go:build !windows

package session

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/logger"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	dir := t.TempDir()
	m := NewManager(Options{Shell: "/bin/sh", Dir: dir}, logger.Nop())
	t.Cleanup(func() { _ = m.Close() })
	return m, dir
}

func TestManager_NoSession(t *testing.T) {
	m := NewManager(Options{}, logger.Nop())

	assert.ErrorIs(t, m.Write([]byte("ls\n")), domain.ErrNoSession)
	assert.ErrorIs(t, m.Resize(100, 40), domain.ErrNoSession)
	assert.Equal(t, "", m.Read())
	assert.False(t, m.HasPendingOutput())
	assert.NotEmpty(t, m.Cwd())
	_, ok := m.Info()
	assert.False(t, ok)
	assert.NoError(t, m.Close())
}

func TestManager_WriteThenReadEventuallyYieldsOutput(t *testing.T) {
	m, dir := newTestManager(t)

	info, err := m.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, domain.DefaultCols, info.Cols)
	assert.Equal(t, domain.DefaultRows, info.Rows)
	assert.Equal(t, dir, m.Cwd())

	again, err := m.Create()
	require.NoError(t, err)
	assert.Equal(t, info.ID, again.ID, "Create is idempotent")

	// Reading before any output is never an error.
	_ = m.Read()

	require.NoError(t, m.Write([]byte("echo shai_marker_$((40+2))\n")))

	var out strings.Builder
	require.Eventually(t, func() bool {
		out.WriteString(m.Read())
		return strings.Contains(out.String(), "shai_marker_42")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestManager_InfersCwdFromPwdMarker(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Create()
	require.NoError(t, err)

	target := t.TempDir()
	require.NoError(t, m.Write([]byte("cd '"+target+"'\n")))

	require.Eventually(t, func() bool {
		_ = m.Write([]byte("echo PWD=`pwd`\n"))
		time.Sleep(50 * time.Millisecond)
		m.Read()
		return m.Cwd() == target
	}, 5*time.Second, 100*time.Millisecond)
}

func TestManager_Resize(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Create()
	require.NoError(t, err)

	require.NoError(t, m.Resize(120, 40))
	info, ok := m.Info()
	require.True(t, ok)
	assert.Equal(t, uint16(120), info.Cols)
	assert.Equal(t, uint16(40), info.Rows)
}

func TestManager_CloseThenWrite(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Create()
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Write([]byte("ls\n")), domain.ErrNoSession)
	assert.NoError(t, m.Close(), "closing twice is fine")
}

func TestSession_WriteAfterExit(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	s, err := Start(Options{Shell: "/bin/sh", Dir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Write([]byte("exit 0\n")))
	select {
	case <-s.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not exit")
	}

	assert.ErrorIs(t, s.Write([]byte("ls\n")), domain.ErrSessionExited)
	assert.False(t, s.Info().Active)
}
