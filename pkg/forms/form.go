// Package forms holds the state of an editable draft: field errors, the
// submitting flag, and the reset-after-create rule.
package forms

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
)

var (
	// ErrInvalid is returned by Submit when validation fails. The field
	// errors are available from Errors.
	ErrInvalid = errors.New("form has validation errors")
	ErrBusy    = errors.New("form is already submitting")
	// ErrUnknownField is returned by a Schema's Set for fields it does not have.
	ErrUnknownField = errors.New("unknown form field")
)

func UnknownField(field string) error {
	return fmt.Errorf("%w %q", ErrUnknownField, field)
}

type Schema[D any] struct {
	// Blank returns the defaults of a new draft.
	Blank func() D
	// Set assigns one field of the draft from its text value.
	Set func(d *D, field, value string) error
	// Validate returns a message per invalid field.
	Validate func(ctx context.Context, d D) map[string]string
	// Identified reports whether the draft edits an existing record.
	Identified func(d D) bool
}

type SubmitFunc[D any] func(ctx context.Context, d D) error

type Form[D any] struct {
	schema  Schema[D]
	submit  SubmitFunc[D]
	editing bool

	mu         sync.Mutex
	draft      D
	errs       map[string]string
	submitting bool
}

// New seeds the draft from initial, or from the blank defaults when initial
// is nil.
func New[D any](schema Schema[D], initial *D, submit SubmitFunc[D]) *Form[D] {
	f := &Form[D]{
		schema: schema,
		submit: submit,
		errs:   map[string]string{},
	}
	if initial != nil {
		f.draft = *initial
		f.editing = schema.Identified != nil && schema.Identified(*initial)
	} else {
		f.draft = schema.Blank()
	}
	return f
}

// Set updates field and clears its error.
func (f *Form[D]) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.schema.Set(&f.draft, field, value); err != nil {
		return err
	}
	delete(f.errs, field)
	return nil
}

// Update changes the draft directly and clears the errors of the given fields.
func (f *Form[D]) Update(fn func(d *D), fields ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
	for _, field := range fields {
		delete(f.errs, field)
	}
}

// Submit validates the draft and hands it to the submit callback. Nothing is
// submitted while there are field errors. After a successful create the
// draft returns to its blank defaults; a failed submit leaves it as is.
func (f *Form[D]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	draft := f.draft
	if errs := f.schema.Validate(ctx, draft); len(errs) > 0 {
		f.errs = maps.Clone(errs)
		f.mu.Unlock()
		return ErrInvalid
	}
	f.errs = map[string]string{}
	f.submitting = true
	f.mu.Unlock()

	err := f.submit(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		return err
	}
	if !f.editing {
		f.draft = f.schema.Blank()
	}
	return nil
}

func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[D]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errs)
}

func (f *Form[D]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *Form[D]) Editing() bool {
	return f.editing
}
