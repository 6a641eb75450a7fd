package control

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandle(t *testing.T) {
	h := NewHandle()
	assert.False(t, h.Installed())
	assert.False(t, h.SetEndDate("2024-06-30"), "no sink installed")

	var got []string
	h.Install(func(d string) { got = append(got, d) })
	assert.True(t, h.Installed())
	assert.True(t, h.SetEndDate("2024-06-30"))
	assert.True(t, h.SetEndDate("2023-01-31"))
	assert.Equal(t, []string{"2024-06-30", "2023-01-31"}, got)

	h.Uninstall()
	assert.False(t, h.SetEndDate("2022-01-01"))
	assert.Len(t, got, 2)
}

func TestHandle_InstallReplaces(t *testing.T) {
	h := NewHandle()
	var first, second int
	h.Install(func(string) { first++ })
	h.Install(func(string) { second++ })

	h.SetEndDate("2024-01-01")
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "2024-06-30", "2024-06-30"},
		{"TrailingNewline", "2024-06-30\n", "2024-06-30"},
		{"LeadingBlankLines", "\n  \n 2024-06-30 \nignored\n", "2024-06-30"},
		{"Empty", "", ""},
		{"OnlyWhitespace", " \n\t\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstLine([]byte(tt.in)))
		})
	}
}

func TestFileWatcher_ForwardsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enddate")

	var (
		mu  sync.Mutex
		got []string
	)
	h := NewHandle()
	h.Install(func(d string) {
		mu.Lock()
		got = append(got, d)
		mu.Unlock()
	})

	w, err := NewFileWatcher(path, h, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("2023-03-31\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0 && got[len(got)-1] == "2023-03-31"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enddate")

	calls := make(chan string, 4)
	h := NewHandle()
	h.Install(func(d string) { calls <- d })

	w, err := NewFileWatcher(path, h, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("2020-01-01"), 0o644))

	select {
	case d := <-calls:
		t.Fatalf("unexpected end date %q", d)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestNewFileWatcher_MissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "enddate"), NewHandle(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch directory")
}
