package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Pick(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		lo   time.Duration
		hi   time.Duration
	}{
		{name: "zero", r: Range{}, lo: 0, hi: 0},
		{name: "fixed", r: Range{Min: 3, Max: 3}, lo: 3 * time.Second, hi: 3 * time.Second},
		{name: "window", r: Range{Min: 1, Max: 2}, lo: time.Second, hi: 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				got := tt.r.Pick()
				assert.GreaterOrEqual(t, got, tt.lo)
				assert.LessOrEqual(t, got, tt.hi)
			}
		})
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\n  b  \n# comment\nc"), 0o600))

	lines, err := ReadLines(path, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines)

	lines, err = ReadLines(filepath.Join(dir, "missing.txt"), true)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = ReadLines(filepath.Join(dir, "missing.txt"), false)
	assert.Error(t, err)
}
