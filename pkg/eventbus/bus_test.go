package eventbus

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type created struct {
	id string
}

type deleted struct {
	id string
}

func bufferedLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublish_RoutesByType(t *testing.T) {
	bus := NewEventPublisher(nil)
	var got []string
	bus.Subscribe(func(e *created) { got = append(got, "created:"+e.id) })
	bus.Subscribe(func(e *deleted) { got = append(got, "deleted:"+e.id) })

	bus.Publish(&created{id: "EMP001"})
	bus.Publish(&deleted{id: "EMP002"})

	assert.Equal(t, []string{"created:EMP001", "deleted:EMP002"}, got)
}

func TestPublish_WarnsWithoutSubscribers(t *testing.T) {
	log, buf := bufferedLogger(logrus.WarnLevel)
	bus := NewEventPublisher(log)
	bus.Subscribe(func(e *deleted) { t.Error("should not be called") })

	bus.Publish(&created{id: "x"})
	assert.Contains(t, buf.String(), "no matching subscribers")
}

func TestPublish_RecoversFromPanics(t *testing.T) {
	log, buf := bufferedLogger(logrus.WarnLevel)
	bus := NewEventPublisher(log)
	called := false
	bus.Subscribe(func(e *created) { panic("intentional") })
	bus.Subscribe(func(e *created) { called = true })

	require.NotPanics(t, func() { bus.Publish(&created{}) })
	assert.True(t, called)
	assert.Contains(t, buf.String(), "panicked")
	assert.NotContains(t, buf.String(), "no matching subscribers")
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventPublisher(nil)
	calls := 0
	unsubscribe := bus.Subscribe(func(e *created) { calls++ })
	bus.Subscribe(func(e *created) {})
	require.Equal(t, 2, bus.SubscribersCount())

	unsubscribe()
	unsubscribe()
	bus.Publish(&created{})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, bus.SubscribersCount())

	bus.Clear()
	assert.Equal(t, 0, bus.SubscribersCount())
}

func TestPublishE(t *testing.T) {
	t.Run("no subscribers", func(t *testing.T) {
		err := NewEventPublisher(nil).PublishE(&created{})
		assert.ErrorIs(t, err, ErrNoSubscribers)
	})

	t.Run("joins handler errors", func(t *testing.T) {
		bus := NewEventPublisher(nil)
		err1 := errors.New("err1")
		err2 := errors.New("err2")
		bus.Subscribe(func(e *created) error { return err1 })
		bus.Subscribe(func(e *created) error { return err2 })
		err := bus.PublishE(&created{})
		assert.ErrorIs(t, err, err1)
		assert.ErrorIs(t, err, err2)
	})

	t.Run("invalid return", func(t *testing.T) {
		bus := NewEventPublisher(nil)
		bus.Subscribe(func(e *created) int { return 1 })
		assert.ErrorIs(t, bus.PublishE(&created{}), ErrInvalidHandlerReturn)
	})
}

func TestMatchSignature(t *testing.T) {
	assert.True(t, MatchSignature(func(e *created) {}, []any{&created{}}))
	assert.False(t, MatchSignature(func(e *created) {}, []any{&deleted{}}))
	assert.False(t, MatchSignature(func(e *created) {}, []any{}))
	assert.True(t, MatchSignature(func(ctx context.Context, e *created) {}, []any{context.Background(), &created{}}))
	assert.True(t, MatchSignature(func(e *created) {}, []any{nil}))
	assert.False(t, MatchSignature(func(n int) {}, []any{nil}))
	assert.False(t, MatchSignature("not a func", []any{}))
}
