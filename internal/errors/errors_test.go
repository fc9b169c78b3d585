package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	assert.True(t, Is(wrappedErr, origErr))
}

func TestStoreErrors(t *testing.T) {
	dup := NewDuplicateName("Documents")
	assert.True(t, IsDuplicateName(dup))
	assert.False(t, IsNotFound(dup))
	assert.Equal(t, "Documents", dup.Name())
	assert.Contains(t, dup.Error(), `"Documents"`)

	missing := NewNotFound("Work")
	assert.True(t, IsNotFound(missing))
	assert.Equal(t, NotFound, missing.Kind())

	reserved := NewReserved("Default")
	assert.True(t, IsReserved(reserved))

	format := NewConfigFormat("malformed categories file", New("unexpected token"))
	assert.True(t, IsConfigFormat(format))
	assert.Contains(t, format.Error(), "malformed categories file")

	// Kind checks follow wrapping chains
	assert.True(t, IsDuplicateName(Wrap(dup, "adding category")))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot move", "/tmp/a.txt", New("permission denied"))
	assert.True(t, IsFileError(fileErr))
	assert.Equal(t, "/tmp/a.txt", fileErr.Path())
	assert.Equal(t, FileOperationFailed, fileErr.Kind())
	assert.Contains(t, fileErr.Error(), "/tmp/a.txt")
	assert.Contains(t, fileErr.Error(), "permission denied")

	assert.False(t, IsFileError(New("plain")))
}
