package errclass_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/revlog-project/revlog/pkg/errclass"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	assert.Equal(t, "E_NOT_FOUND", errclass.ErrNotFound.Error())

	withMsg := errclass.ErrNotFound.WithMessage("entry gists missing")
	assert.Equal(t, "E_NOT_FOUND: entry gists missing", withMsg.Error())
}

func TestError_Is(t *testing.T) {
	err := errclass.ErrAlreadyExists.WithMessagef("entry %s already exists", "repo1")
	assert.ErrorIs(t, err, errclass.ErrAlreadyExists)
	assert.NotErrorIs(t, err, errclass.ErrNotFound)
}

func TestError_IsThroughWrapping(t *testing.T) {
	inner := errclass.ErrStorageCorruption.WithMessage("bad checksum at record 3")
	wrapped := fmt.Errorf("load entry: %w", inner)
	assert.ErrorIs(t, wrapped, errclass.ErrStorageCorruption)
}

func TestError_IsNonClassTarget(t *testing.T) {
	assert.False(t, errors.Is(errclass.ErrNotFound, errors.New("E_NOT_FOUND")))
}
