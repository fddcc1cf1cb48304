package controllers_test

import (
	"context"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-library/internal/controllers"
)

func deadlineFor(t *testing.T, h *controllers.BaseHandler, kind controllers.HandlerType) time.Duration {
	t.Helper()
	ctx, cancel := h.WithTimeout(context.Background(), kind)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected deadline on context")
	}
	return time.Until(deadline)
}

func TestNewBaseHandlerFillsFallbacks(t *testing.T) {
	h := controllers.NewBaseHandler(controllers.HandlerTimeouts{})

	for _, kind := range []controllers.HandlerType{
		controllers.HandlerTypeDefault,
		controllers.HandlerTypeCommand,
		controllers.HandlerTypeQuery,
	} {
		remaining := deadlineFor(t, h, kind)
		if remaining <= 0 || remaining > 5*time.Second {
			t.Fatalf("unexpected timeout for kind %d: %v", kind, remaining)
		}
	}
}

func TestNewBaseHandlerPropagatesCommandTimeout(t *testing.T) {
	h := controllers.NewBaseHandler(controllers.HandlerTimeouts{Command: 2 * time.Second})

	remaining := deadlineFor(t, h, controllers.HandlerTypeDefault)
	if remaining > 2*time.Second {
		t.Fatalf("default should inherit command timeout, got %v", remaining)
	}
	remaining = deadlineFor(t, h, controllers.HandlerTypeQuery)
	if remaining > 2*time.Second {
		t.Fatalf("query should inherit default timeout, got %v", remaining)
	}
}

func TestWithTimeoutDistinguishesKinds(t *testing.T) {
	h := controllers.NewBaseHandler(controllers.HandlerTimeouts{
		Default: 5 * time.Second,
		Command: 3 * time.Second,
		Query:   time.Second,
	})

	query := deadlineFor(t, h, controllers.HandlerTypeQuery)
	command := deadlineFor(t, h, controllers.HandlerTypeCommand)
	if query >= command {
		t.Fatalf("query timeout %v should be shorter than command timeout %v", query, command)
	}
}
