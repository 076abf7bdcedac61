package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrRecoverable = errors.New("recoverable err occoured")

	// ErrInsufficientBuffer header does not fit in the remaining buffer
	ErrInsufficientBuffer = errors.New("insufficient buffer")
	// ErrInvalidHeaderLength header length field smaller than the fixed header
	ErrInvalidHeaderLength = errors.New("invalid header length")
	// ErrUnsupportedLayer next layer protocol has no overlay
	ErrUnsupportedLayer = errors.New("unsupported layer")
)

// ParseError layer overlay construction failure
type ParseError struct {
	Layer  string
	Offset int
	Need   int
	Len    int

	cause error
}

func (err *ParseError) Error() string {
	if err.cause == ErrInsufficientBuffer {
		return fmt.Sprintf(
			"could not parse layer %s: insufficient buffer (offset %d, need %d, len %d)",
			err.Layer, err.Offset, err.Need, err.Len,
		)
	}

	return fmt.Sprintf(
		"could not parse layer %s: %v (offset %d, header length %d)",
		err.Layer, err.cause, err.Offset, err.Need,
	)
}

func (err *ParseError) Unwrap() error {
	return err.cause
}

// Cause implements causer for github.com/pkg/errors
func (err *ParseError) Cause() error {
	return err.cause
}

// NewInsufficientBuffer create bounds error for layer at offset
func NewInsufficientBuffer(layer string, offset, need, length int) error {
	return pkgerrors.WithStack(&ParseError{
		Layer:  layer,
		Offset: offset,
		Need:   need,
		Len:    length,
		cause:  ErrInsufficientBuffer,
	})
}

// NewInvalidHeaderLength create header length error for layer at offset
func NewInvalidHeaderLength(layer string, offset, headerLen int) error {
	return pkgerrors.WithStack(&ParseError{
		Layer:  layer,
		Offset: offset,
		Need:   headerLen,
		cause:  ErrInvalidHeaderLength,
	})
}

func New(msg string) error {
	return pkgerrors.New(msg)
}

func Join(err ...error) error {
	return errors.Join(err...)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func NewRecoverable(msg string) error {
	return errors.Join(ErrRecoverable, New(msg))
}

// Recoverable mark err as recoverable
func Recoverable(err error) error {
	if err == nil {
		return nil
	}

	return errors.Join(ErrRecoverable, err)
}

func IsRecoverable(err error) bool {
	return errors.Is(err, ErrRecoverable)
}
