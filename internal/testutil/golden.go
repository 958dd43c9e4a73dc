// Package testutil provides golden file helpers for snapshot tests:
// comparing current output against known-good reference data stored under
// the calling package's testdata directory.
package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flag to update golden files during test runs
var updateGolden = flag.Bool("update-golden", false, "Update golden files")

// AssertGoldenJSON compares the JSON encoding of data against the golden
// file testdata/golden/<name>.golden in the calling package. A missing
// golden file is created from the actual output and the test is skipped,
// so a fresh checkout seeds its references on the first run.
func AssertGoldenJSON(t *testing.T, name string, data interface{}) {
	t.Helper()

	actual, err := json.MarshalIndent(data, "", "  ")
	require.NoError(t, err, "Failed to marshal data to JSON")

	AssertGoldenBytes(t, name, actual)
}

// AssertGoldenBytes compares raw bytes against a golden file.
func AssertGoldenBytes(t *testing.T, name string, actual []byte) {
	t.Helper()

	dir := filepath.Join("testdata", "golden")
	err := os.MkdirAll(dir, 0o755)
	require.NoError(t, err, "Failed to create golden directory")

	goldenPath := filepath.Join(dir, sanitizeFilename(name)+".golden")

	if *updateGolden {
		err := os.WriteFile(goldenPath, actual, 0o644)
		require.NoError(t, err, "Failed to write golden file: %s", goldenPath)
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		err := os.WriteFile(goldenPath, actual, 0o644)
		require.NoError(t, err, "Failed to create golden file: %s", goldenPath)
		t.Skipf("Golden file %s did not exist and has been created; re-run to compare", goldenPath)
		return
	}
	require.NoError(t, err, "Failed to read golden file: %s", goldenPath)

	if !bytes.Equal(expected, actual) {
		assert.Equal(t, string(expected), string(actual),
			"Golden file mismatch for %s. Use -update-golden to update the golden file.", name)
	}
}

// sanitizeFilename makes a name safe for use as a filename
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(name)
}
