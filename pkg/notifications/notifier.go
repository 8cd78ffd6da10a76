// Package notifications is the user-facing message port. Producers publish
// through a Notifier; whoever renders messages subscribes on the event bus.
package notifications

import (
	"fmt"
	"time"

	"github.com/iota-uz/hrms-lite/pkg/eventbus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

func (n *Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.Level, n.Message)
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// BusNotifier publishes *Notification events.
type BusNotifier struct {
	bus eventbus.EventBus
	now func() time.Time
}

func New(bus eventbus.EventBus) *BusNotifier {
	return &BusNotifier{bus: bus, now: time.Now}
}

func (n *BusNotifier) Success(msg string) { n.publish(LevelSuccess, msg) }
func (n *BusNotifier) Error(msg string)   { n.publish(LevelError, msg) }
func (n *BusNotifier) Info(msg string)    { n.publish(LevelInfo, msg) }

func (n *BusNotifier) publish(level Level, msg string) {
	if n == nil || n.bus == nil || msg == "" {
		return
	}
	n.bus.Publish(&Notification{Level: level, Message: msg, At: n.now()})
}

// Recorder collects notifications in memory. The zero value is ready to use.
type Recorder struct {
	Items []Notification
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }
func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.Items = append(r.Items, Notification{Level: level, Message: msg})
}

// Last returns the most recent notification, or nil.
func (r *Recorder) Last() *Notification {
	if len(r.Items) == 0 {
		return nil
	}
	return &r.Items[len(r.Items)-1]
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
func (discard) Info(string)    {}
