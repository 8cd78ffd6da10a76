package composables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseLogger(t *testing.T) {
	assert.NotNil(t, UseLogger(context.Background()))

	entry := logrus.New().WithField("cmd", "employees list")
	ctx := WithLogger(context.Background(), entry)
	assert.Same(t, entry, UseLogger(ctx))
}

func TestUseRequestID(t *testing.T) {
	fresh := UseRequestID(context.Background())
	_, err := uuid.Parse(fresh)
	require.NoError(t, err)
	assert.NotEqual(t, fresh, UseRequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", UseRequestID(ctx))
}
