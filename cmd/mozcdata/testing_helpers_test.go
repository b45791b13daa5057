package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mozcdata/datamanager"
	"github.com/arloliu/mozcdata/internal/datasettest"
)

// writeDataset writes a complete test dataset into a temporary directory and
// returns its path.
func writeDataset(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.data")
	require.NoError(t, os.WriteFile(path, datasettest.Build(t, datamanager.MagicNumber()), 0o600))

	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	magicFlag = ""
	codecFlag = "none"
	lookupPrefix = false
	packCodec = "zstd"
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String(), fnErr
}
