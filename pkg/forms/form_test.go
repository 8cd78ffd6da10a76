package forms

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    string
	Title string
}

var noteSchema = Schema[note]{
	Blank: func() note { return note{} },
	Set: func(d *note, field, value string) error {
		switch field {
		case "title":
			d.Title = value
		case "id":
			d.ID = value
		default:
			return UnknownField(field)
		}
		return nil
	},
	Validate: func(_ context.Context, d note) map[string]string {
		if strings.TrimSpace(d.Title) == "" {
			return map[string]string{"title": "Title is required"}
		}
		return nil
	},
	Identified: func(d note) bool { return d.ID != "" },
}

func TestSubmit_InvalidNeverCallsSubmit(t *testing.T) {
	called := false
	f := New(noteSchema, nil, func(context.Context, note) error {
		called = true
		return nil
	})
	err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
	assert.Equal(t, map[string]string{"title": "Title is required"}, f.Errors())

	require.NoError(t, f.Set("title", "x"))
	assert.Empty(t, f.Errors())
}

func TestSubmit_ResetsAfterCreate(t *testing.T) {
	var got note
	f := New(noteSchema, nil, func(_ context.Context, n note) error {
		got = n
		return nil
	})
	require.NoError(t, f.Set("title", "Standup"))
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, note{}, f.Draft())
	assert.False(t, f.Submitting())
}

func TestSubmit_KeepsDraftWhenEditing(t *testing.T) {
	f := New(noteSchema, &note{ID: "n1", Title: "Old"}, func(context.Context, note) error { return nil })
	require.True(t, f.Editing())
	require.NoError(t, f.Set("title", "New"))
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, note{ID: "n1", Title: "New"}, f.Draft())
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	boom := errors.New("boom")
	f := New(noteSchema, nil, func(context.Context, note) error { return boom })
	require.NoError(t, f.Set("title", "Standup"))
	require.ErrorIs(t, f.Submit(context.Background()), boom)
	assert.Equal(t, "Standup", f.Draft().Title)
	assert.False(t, f.Submitting())
}

func TestSubmit_Busy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := New(noteSchema, nil, func(context.Context, note) error {
		close(started)
		<-release
		return nil
	})
	require.NoError(t, f.Set("title", "Standup"))

	done := make(chan error)
	go func() { done <- f.Submit(context.Background()) }()
	<-started
	assert.True(t, f.Submitting())
	assert.ErrorIs(t, f.Submit(context.Background()), ErrBusy)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not finish")
	}
}

func TestSet_UnknownField(t *testing.T) {
	f := New(noteSchema, nil, func(context.Context, note) error { return nil })
	assert.ErrorIs(t, f.Set("body", "x"), ErrUnknownField)
}
