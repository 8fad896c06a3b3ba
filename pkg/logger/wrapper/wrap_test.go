package wrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLogCtx_MergesExisting(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithLogCtx(ctx, LogCtx{Action: "render"})

	lc := fromCtx(ctx)
	assert.Equal(t, "run-1", lc.RunID)
	assert.Equal(t, "render", lc.Action)
}

func TestError_PreservesChain(t *testing.T) {
	sentinel := errors.New("boom")
	ctx := WithDataset(context.Background(), "drivers")

	err := Error(ctx, fmt.Errorf("load: %w", sentinel))
	assert.ErrorIs(t, err, sentinel)
	assert.Nil(t, Error(ctx, nil))

	restored := ErrorCtx(context.Background(), err)
	assert.Equal(t, "drivers", fromCtx(restored).Dataset)
}

func TestError_RewrapRefreshesContext(t *testing.T) {
	first := Error(WithReport(context.Background(), "peak_hours"), errors.New("x"))
	again := Error(WithReport(context.Background(), "top_drivers"), first)

	assert.Same(t, first, again)
	assert.Equal(t, "top_drivers", fromCtx(ErrorCtx(context.Background(), again)).Report)
}
