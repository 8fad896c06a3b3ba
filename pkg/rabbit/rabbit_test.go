package rabbit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCloseWithCtxFunc(t *testing.T) {
	boom := errors.New("boom")
	assert.ErrorIs(t, closeWithCtxFunc(context.Background(), func() error { return boom }), boom)
	assert.NoError(t, closeWithCtxFunc(context.Background(), func() error { return nil }))
}

func TestCloseWithCtxFunc_ContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)

	err := closeWithCtxFunc(ctx, func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsConnectionClosed_NoConnection(t *testing.T) {
	assert.True(t, (&RabbitMQ{}).IsConnectionClosed())
}
