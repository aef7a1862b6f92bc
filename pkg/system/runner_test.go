package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmaint/archmaint/pkg/errors"
)

func TestOutputCaptures(t *testing.T) {
	r := NewRunner()
	out, err := r.Output(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestOutputFailureCarriesExitCode(t *testing.T) {
	r := NewRunner()
	_, err := r.Output(context.Background(), "false")
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Equal(t, 1, ExitCode(err))
}

func TestRunMissingTool(t *testing.T) {
	r := NewRunner()
	err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	assert.Equal(t, -1, ExitCode(err))
}

func TestLookPath(t *testing.T) {
	r := NewRunner()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
}

func TestFirstAvailable(t *testing.T) {
	r := NewRunner()

	name, err := FirstAvailable(r, "", "definitely-not-a-real-binary-xyz", "sh")
	require.NoError(t, err)
	assert.Equal(t, "sh", name)

	name, err = FirstAvailable(r, "sh", "definitely-not-a-real-binary-xyz")
	require.NoError(t, err)
	assert.Equal(t, "sh", name)

	_, err = FirstAvailable(r, "", "definitely-not-a-real-binary-xyz")
	assert.Error(t, err)
}

func TestExitCodeNil(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}
