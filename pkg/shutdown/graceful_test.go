package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartnote/pkg/shutdown"
)

func TestRunExecutesAllHooks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	shutdown.Run(ctx,
		shutdown.Hook{Name: "first", Fn: hook},
		shutdown.Hook{Name: "second", Fn: hook},
		shutdown.Hook{Name: "third", Fn: hook},
	)

	assert.Equal(t, int32(3), calls.Load())
}

func TestRunSurvivesHookError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var called atomic.Bool
	shutdown.Run(ctx,
		shutdown.Hook{Name: "broken", Fn: func(context.Context) error {
			return errors.New("close failed")
		}},
		shutdown.Hook{Name: "ok", Fn: func(context.Context) error {
			called.Store(true)
			return nil
		}},
	)

	assert.True(t, called.Load())
}

func TestRunReturnsOnContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	shutdown.Run(ctx, shutdown.Hook{Name: "stuck", Fn: func(context.Context) error {
		<-release
		return nil
	}})

	assert.Less(t, time.Since(start), time.Second)
}
