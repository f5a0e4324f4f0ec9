package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout bounds a test that talks to a container or a sink.
// The context is cancelled in t.Cleanup.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

// ContextWithCancel возвращает context для остановки archive.Pump и
// runner'а из теста. Отменяется автоматически при завершении теста.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}
