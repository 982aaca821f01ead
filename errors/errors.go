// Package errors implements a basic error wrapping pattern, so that errors
// can be annotated with additional information without losing the original
// error.
//
// Example:
//
//	err := errors.New("permission denied")
//	err2 := errors.Wrap(err, "connecting to service")
//
// Here err2 contains the message "connecting to service: permission denied"
// but errors.Root(err2) will return err, so the caller can determine the
// category of failure with a simple comparison or switch.
//
// Additional user-facing detail can be attached with WithDetail and
// retrieved with Detail; arbitrary structured data can be attached with
// WithData and retrieved with Data.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// wrapperError satisfies the error interface.
type wrapperError struct {
	msg    string
	detail []string
	data   map[string]interface{}
	root   error
}

// Error satisfies the error interface.
// It returns the message of the wrapped error, prefixed by
// each context message added with Wrap, outermost first.
func (e wrapperError) Error() string {
	return e.msg
}

// Root returns the original error that was wrapped by one or more
// calls to Wrap. If e does not wrap other errors, it will be returned
// as-is.
func Root(e error) error {
	if wErr, ok := e.(wrapperError); ok {
		return wErr.root
	}
	return e
}

// wrap adds text to the error's message without changing its root.
func wrap(err error, text string) error {
	if err == nil {
		return nil
	}

	werr, ok := err.(wrapperError)
	if !ok {
		werr.root = err
		werr.msg = err.Error()
	}
	if text != "" {
		werr.msg = text + ": " + werr.msg
	}
	return werr
}

// Wrap adds a context message to err and returns the new error.
// The part of the message corresponding to err is still produced
// by calling its Error method.
//
// Wrap returns nil when err is nil.
func Wrap(err error, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrap(err, fmt.Sprint(a...))
}

// Wrapf is like Wrap, but it formats the context message
// per the format specifier.
//
// Wrapf returns nil when err is nil.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrap(err, fmt.Sprintf(format, a...))
}

// WithDetail returns a new error that wraps err as a chain error
// message containing text as its additional context.
func WithDetail(err error, text string) error {
	if err == nil {
		return nil
	}
	if text == "" {
		return err
	}
	e1 := wrap(err, text).(wrapperError)
	e1.detail = append(e1.detail, text)
	return e1
}

// WithDetailf is like WithDetail, except it formats the detail message
// per the format specifier.
func WithDetailf(err error, format string, v ...interface{}) error {
	if err == nil {
		return nil
	}
	text := fmt.Sprintf(format, v...)
	e1 := wrap(err, text).(wrapperError)
	e1.detail = append(e1.detail, text)
	return e1
}

// Detail returns the detail message contained in err, if any.
// An error has a detail message if it was made by WithDetail
// or WithDetailf.
func Detail(err error) string {
	wrapper, ok := err.(wrapperError)
	if !ok {
		return err.Error()
	}
	return strings.Join(wrapper.detail, "; ")
}

// withData returns a new error that wraps err as a chain error message
// containing v as an extra data item.
func withData(err error, v map[string]interface{}) error {
	if err == nil {
		return nil
	}
	e1 := wrap(err, "").(wrapperError)
	newData := make(map[string]interface{})
	for k, d := range e1.data {
		newData[k] = d
	}
	for k, d := range v {
		newData[k] = d
	}
	e1.data = newData
	return e1
}

// WithData returns a new error that wraps err as a chain error message
// containing keyval as extra data items. Keyval takes the form
//
//	k1, v1, k2, v2, ...
//
// where ki are strings.
func WithData(err error, keyval ...interface{}) error {
	if err == nil {
		return nil
	}
	// TODO(kr): add vet check for odd-length keyval and non-string keys
	newData := make(map[string]interface{}, len(keyval)/2)
	for i := 0; i < len(keyval); i += 2 {
		newData[keyval[i].(string)] = keyval[i+1]
	}
	return withData(err, newData)
}

// Data returns the data item in err, if any.
func Data(err error) map[string]interface{} {
	wrapper, _ := err.(wrapperError)
	return wrapper.data
}
