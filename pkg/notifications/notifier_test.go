package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/hrms-lite/pkg/eventbus"
)

func TestBusNotifier_PublishesNotifications(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)
	var got []*Notification
	bus.Subscribe(func(n *Notification) { got = append(got, n) })

	n := New(bus)
	n.Success("Employee created successfully")
	n.Error("Network error. Please check your connection.")
	n.Info("")

	require.Len(t, got, 2)
	assert.Equal(t, LevelSuccess, got[0].Level)
	assert.Equal(t, "Employee created successfully", got[0].Message)
	assert.False(t, got[0].At.IsZero())
	assert.Equal(t, "[error] Network error. Please check your connection.", got[1].String())
}

func TestRecorder(t *testing.T) {
	var r Recorder
	assert.Nil(t, r.Last())
	r.Info("Loaded 10 more employees")
	require.NotNil(t, r.Last())
	assert.Equal(t, LevelInfo, r.Last().Level)
}
