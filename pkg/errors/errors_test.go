package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrToolMissing, "pacman not found")
	assert.Equal(t, ErrToolMissing, err.Code)
	assert.Equal(t, "[TOOL_MISSING] pacman not found", err.Error())
	assert.Nil(t, err.Wrapped)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCommandFailed, "%s exited with %d", "snapper", 2)
	assert.Equal(t, "[COMMAND_FAILED] snapper exited with 2", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("exit status 1")
	err := Wrap(inner, ErrUpgradeFailed, "pacman -Su failed")

	assert.Equal(t, "[UPGRADE_FAILED] pacman -Su failed: exit status 1", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrUpgradeFailed, "should be nil"))
	assert.Nil(t, Wrapf(nil, ErrUpgradeFailed, "should be %s", "nil"))
}

func TestIs(t *testing.T) {
	err := New(ErrSnapshotSpace, "volume below threshold")
	target := New(ErrSnapshotSpace, "different message")

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrSnapshotCreate, "other code")))
}

func TestIsErrorCode(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), ErrDiskHealth, "smartctl verdict")

	assert.True(t, IsErrorCode(err, ErrDiskHealth))
	assert.False(t, IsErrorCode(err, ErrDiskScan))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrDiskHealth))
}

func TestIsErrorCodeWrappedDeep(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrExcludeLoad, "bad toml"))
	assert.True(t, IsErrorCode(err, ErrExcludeLoad))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrFeedParse, GetErrorCode(New(ErrFeedParse, "bad xml")))
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCommandFailed, "failed").
		WithDetail("command", "flatpak").
		WithDetail("exitCode", 1)

	details := GetErrorDetails(err)
	assert.Equal(t, "flatpak", details["command"])
	assert.Equal(t, 1, details["exitCode"])
	assert.Nil(t, GetErrorDetails(fmt.Errorf("plain")))
}
