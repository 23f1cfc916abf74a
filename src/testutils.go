package framesync

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertOutputContains runs command with os.Stdout redirected, and asserts
// the captured output contains expectedOutputContains. Colorized logger
// output can interfere with this; prefer plain fmt.Print in code under test.
func AssertOutputContains(t *testing.T, command func(), expectedOutputContains string) {
	t.Helper()

	oldStdout := os.Stdout
	defer func() {
		os.Stdout = oldStdout
	}()

	r, w, _ := os.Pipe()
	os.Stdout = w

	command()

	w.Close() //nolint:gosec

	os.Stdout = oldStdout

	outputBytes, readErr := io.ReadAll(r)
	require.NoError(t, readErr)

	assert.Contains(t, string(outputBytes), expectedOutputContains)
}
