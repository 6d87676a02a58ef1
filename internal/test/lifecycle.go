package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder captures lifecycle hooks appended during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Last returns the most recently appended hook.
func (l *LifecycleRecorder) Last() fx.Hook {
	if len(l.Hooks) == 0 {
		return fx.Hook{}
	}
	return l.Hooks[len(l.Hooks)-1]
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}
}

// NewShutdownerStub creates a stub with a buffered notification channel.
func NewShutdownerStub() *ShutdownerStub {
	return &ShutdownerStub{Called: make(chan struct{}, 1)}
}

// Shutdown notifies tests about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called == nil {
		return nil
	}
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
