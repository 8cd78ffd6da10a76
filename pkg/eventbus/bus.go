// Package eventbus dispatches events to handlers chosen by their parameter
// types. A handler is any func whose parameters accept the published values.
package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/hrms-lite/pkg/serrors"
)

type EventBus interface {
	Publish(args ...any)
	PublishE(args ...any) error
	// Subscribe registers handler and returns a func that removes it.
	Subscribe(handler any) (unsubscribe func())
	Clear()
	SubscribersCount() int
}

var (
	ErrNoSubscribers        = serrors.NewError("EVENTBUS_NO_SUBSCRIBERS", "no matching subscribers", "")
	ErrInvalidHandlerReturn = serrors.NewError("EVENTBUS_INVALID_HANDLER_RETURN", "invalid handler return signature", "")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type subscription struct {
	id uint64
	fn reflect.Value
}

type bus struct {
	log *logrus.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &bus{log: log}
}

// MatchSignature reports whether handler can be called with args.
func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		param := t.In(i)
		if arg == nil {
			switch param.Kind() {
			case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice:
				continue
			default:
				return false
			}
		}
		if !reflect.TypeOf(arg).AssignableTo(param) {
			return false
		}
	}
	return true
}

func (b *bus) Subscribe(handler any) func() {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		panic("eventbus: handler must be a function")
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: v})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) Clear() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}

func (b *bus) SubscribersCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish calls every matching handler. Panics are logged and do not stop the
// remaining handlers; returned errors are logged at warn.
func (b *bus) Publish(args ...any) {
	handled, errs := b.dispatch(args)
	for _, err := range errs {
		b.logf(logrus.ErrorLevel, "eventbus: %v (args %v)", err, args)
	}
	if handled == 0 {
		b.logf(logrus.WarnLevel, "eventbus.Publish: no matching subscribers for event with args: %v", args)
	}
}

// PublishE is Publish that reports handler failures instead of logging them.
func (b *bus) PublishE(args ...any) error {
	handled, errs := b.dispatch(args)
	if handled == 0 && len(errs) == 0 {
		return ErrNoSubscribers
	}
	return errors.Join(errs...)
}

// dispatch returns the number of handlers that completed without panicking.
func (b *bus) dispatch(args []any) (int, []error) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	handled := 0
	var errs []error
	for _, s := range subs {
		if !MatchSignature(s.fn.Interface(), args) {
			continue
		}
		call := make([]reflect.Value, len(in))
		for i, v := range in {
			if !v.IsValid() {
				v = reflect.Zero(s.fn.Type().In(i))
			}
			call[i] = v
		}
		if err := invoke(s.fn, call); err != nil {
			errs = append(errs, err)
			var p *panicError
			if errors.As(err, &p) {
				continue
			}
		}
		handled++
	}
	return handled, errs
}

type panicError struct {
	handler string
	value   any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("handler %s panicked: %v", e.handler, e.value)
}

func invoke(fn reflect.Value, in []reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{handler: fn.Type().String(), value: r}
		}
	}()
	out := fn.Call(in)
	switch {
	case len(out) == 0:
		return nil
	case len(out) > 1 || out[0].Type() != errorType:
		return fmt.Errorf("%w: handler %s", ErrInvalidHandlerReturn, fn.Type().String())
	case out[0].IsNil():
		return nil
	default:
		return out[0].Interface().(error)
	}
}

func (b *bus) logf(level logrus.Level, format string, args ...any) {
	if b.log != nil {
		b.log.Logf(level, format, args...)
	}
}
