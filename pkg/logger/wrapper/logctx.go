package wrap

import (
	"context"
)

type (
	// LogCtx holds contextual information for logging
	LogCtx struct {
		Action  string
		RunID   string
		Dataset string
		Report  string
	}

	logCtxKeyStruct struct{}
)

// LogCtxKey is the key for log context values
var LogCtxKey = &logCtxKeyStruct{}

func fromCtx(ctx context.Context) LogCtx {
	if lc, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		return lc
	}
	return LogCtx{}
}

// WithLogCtx returns a new context with the provided LogCtx merged over the existing one
func WithLogCtx(ctx context.Context, newLc LogCtx) context.Context {
	lc := fromCtx(ctx)
	if newLc.Action == "" {
		newLc.Action = lc.Action
	}
	if newLc.RunID == "" {
		newLc.RunID = lc.RunID
	}
	if newLc.Dataset == "" {
		newLc.Dataset = lc.Dataset
	}
	if newLc.Report == "" {
		newLc.Report = lc.Report
	}
	return context.WithValue(ctx, LogCtxKey, newLc)
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	lc := fromCtx(ctx)
	lc.Action = action
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithRunID adds or updates the RunID in the LogCtx within the context
func WithRunID(ctx context.Context, runID string) context.Context {
	lc := fromCtx(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithDataset adds or updates the Dataset in the LogCtx within the context
func WithDataset(ctx context.Context, dataset string) context.Context {
	lc := fromCtx(ctx)
	lc.Dataset = dataset
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithReport adds or updates the Report in the LogCtx within the context
func WithReport(ctx context.Context, report string) context.Context {
	lc := fromCtx(ctx)
	lc.Report = report
	return context.WithValue(ctx, LogCtxKey, lc)
}
