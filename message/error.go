package message

import (
	"errors"
	"fmt"
)

// Option value errors.
var (
	ErrOptionTooShort  = errors.New("option value is too short")
	ErrOptionTooLong   = errors.New("option value is too long")
	ErrIllegalValue    = errors.New("illegal option value")
	ErrInvalidEncoding = errors.New("invalid option value encoding")
)

// Message conversion errors.
var (
	ErrMissingMessageID            = errors.New("message id is not set")
	ErrMissingToken                = errors.New("token is not set")
	ErrInvalidTokenLen             = errors.New("invalid token length")
	ErrDataInEmptyMessage          = errors.New("payload is not allowed in an empty message")
	ErrNonRepeatableOptionRepeated = errors.New("non-repeatable option repeated")
	ErrInvalidOptionForMessageType = errors.New("option is not valid for the message type")
	ErrInvalidOptionValue          = errors.New("invalid option value")
	ErrUnknown                     = errors.New("engine failed to process the message")
	ErrMaxMessageSizeLimitExceeded = errors.New("maximum message size limit exceeded")
)

// Message type errors.
var (
	ErrInvalidMessageType = errors.New("message type is not valid for the message code")
	ErrInvalidCodeForRole = errors.New("message code is not valid for the message role")
)

// OptionError reports a conversion failure caused by an option of the kind ID.
// Err wraps one of ErrNonRepeatableOptionRepeated, ErrInvalidOptionForMessageType
// or ErrInvalidOptionValue.
type OptionError struct {
	ID  OptionID
	Err error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %v: %v", e.ID, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

func newOptionError(id OptionID, kind, cause error) *OptionError {
	if cause == nil {
		return &OptionError{ID: id, Err: kind}
	}
	return &OptionError{ID: id, Err: fmt.Errorf("%w: %w", kind, cause)}
}

// NewNonRepeatableOptionRepeatedError reports that the single-valued option id appeared twice.
func NewNonRepeatableOptionRepeatedError(id OptionID) error {
	return newOptionError(id, ErrNonRepeatableOptionRepeated, nil)
}

// NewInvalidOptionForMessageTypeError reports that option id is not applicable to the message.
func NewInvalidOptionForMessageTypeError(id OptionID) error {
	return newOptionError(id, ErrInvalidOptionForMessageType, nil)
}

// NewInvalidOptionValueError reports that the value of option id is invalid, cause tells why.
func NewInvalidOptionValueError(id OptionID, cause error) error {
	return newOptionError(id, ErrInvalidOptionValue, cause)
}
