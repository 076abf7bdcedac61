package errors_test

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pktview/errors"
)

func TestParseError(t *testing.T) {
	err := errors.NewInsufficientBuffer("UDP", 34, 8, 40)

	assert.EqualError(t, err, "could not parse layer UDP: insufficient buffer (offset 34, need 8, len 40)")
	assert.ErrorIs(t, err, errors.ErrInsufficientBuffer)
	assert.NotErrorIs(t, err, errors.ErrInvalidHeaderLength)
	assert.Equal(t, errors.ErrInsufficientBuffer, pkgerrors.Cause(err))

	// stack trace attached by pkg/errors
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.TestParseError")

	err = errors.NewInvalidHeaderLength("IPv4", 14, 16)

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "IPv4", parseErr.Layer)
	assert.Equal(t, 16, parseErr.Need)
	assert.ErrorIs(t, err, errors.ErrInvalidHeaderLength)
	assert.EqualError(t, err, "could not parse layer IPv4: invalid header length (offset 14, header length 16)")
}

func TestRecoverable(t *testing.T) {
	assert.Nil(t, errors.Recoverable(nil))
	assert.False(t, errors.IsRecoverable(nil))

	err := errors.NewRecoverable("skip")
	assert.True(t, errors.IsRecoverable(err))

	wrapped := pkgerrors.Wrap(errors.Recoverable(errors.ErrUnsupportedLayer), "frame 3")
	assert.True(t, errors.IsRecoverable(wrapped))
	assert.True(t, errors.Is(wrapped, errors.ErrUnsupportedLayer))

	assert.False(t, errors.IsRecoverable(errors.New("fatal")))
}
