package wrap

import (
	"context"
	"errors"
)

// Error wraps err with the LogCtx currently stored in ctx.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// already wrapped: refresh the captured context only
	var e *errorWithLogCtx
	if errors.As(err, &e) {
		if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
			e.logCtx = x
		}
		return err
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: fromCtx(ctx),
	}
}
