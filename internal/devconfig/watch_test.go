package devconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	snap := LoadDevices(path, nil)
	require.NoError(t, snap.Err)
	assert.Len(t, snap.Devices, 3)
	assert.NotEmpty(t, snap.Problems)

	snap = LoadDevices(filepath.Join(t.TempDir(), "missing.ini"), nil)
	assert.Error(t, snap.Err)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[A]\nType=Button\nAddress=a@localhost\nButton=(Id=0,Name=A,Description=A)\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snaps := make(chan Snapshot, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(s Snapshot) { snaps <- s })
	}()

	select {
	case s := <-snaps:
		require.NoError(t, s.Err)
		assert.Len(t, s.Devices, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial snapshot")
	}

	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-snaps:
			if s.Err == nil && len(s.Devices) == 3 {
				cancel()
				assert.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}
