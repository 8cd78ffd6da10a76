package main

import (
	"errors"

	"github.com/iota-uz/hrms-lite/pkg/forms"
	"github.com/iota-uz/hrms-lite/pkg/httpapi"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitAPI        = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	if errors.Is(err, forms.ErrInvalid) {
		return exitValidation
	}
	var f *httpapi.Failure
	if errors.As(err, &f) {
		return exitAPI
	}
	return exitFailure
}

// describe renders err for the terminal. API failures include their field
// errors.
func describe(err error) string {
	var f *httpapi.Failure
	if errors.As(err, &f) {
		return f.Describe()
	}
	return err.Error()
}
