package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := NewFileError("cannot decode image", "/in/a.jpg", DecodeFailed, fmt.Errorf("bad header"))

	assert.True(t, IsDecodeFailed(err))
	assert.False(t, IsRelocateFailed(err))
	assert.Equal(t, "cannot decode image: /in/a.jpg: bad header", err.Error())
	assert.Equal(t, "/in/a.jpg", err.Path())
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NewFileError("cannot move file", "/in/a.jpg", RelocateFailed, nil)
	wrapped := Wrap(inner, "categorization failed")

	assert.True(t, IsRelocateFailed(wrapped))

	var fileErr *FileError
	assert.True(t, As(wrapped, &fileErr))
	assert.Equal(t, "/in/a.jpg", fileErr.Path())
}

func TestKindThroughNestedWraps(t *testing.T) {
	inner := NewFileError("cannot move file", "/in/a.jpg", RelocateFailed, nil)
	wrapped := Wrapf(Wrap(inner, "relocation failed"), "categorizing %s", "a.jpg")

	assert.True(t, IsRelocateFailed(wrapped), "wrapping must not discard the kind")
	assert.False(t, IsDecodeFailed(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("keybind missing for action", "quit", InvalidConfig, nil)

	assert.True(t, IsInvalidConfig(err))
	assert.Equal(t, "keybind missing for action: quit", err.Error())
	assert.Equal(t, "quit", err.Param())
}
