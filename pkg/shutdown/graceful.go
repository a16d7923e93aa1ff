// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"smartnote/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogSignalReceived  = "shutdown signal received"
	LogHookFailed      = "shutdown hook failed"
	LogTimeoutExceeded = "shutdown timeout exceeded, some hooks did not finish"
)

// Hook - именованный шаг остановки. Имя попадает в лог при ошибке.
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем параллельно выполняет все хуки в рамках заданного timeout.
// Ошибки хуков логируются здесь, вызывающему коду их обрабатывать не нужно.
func Wait(timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Log(ctx).Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))

	Run(ctx, hooks...)
}

// Run параллельно выполняет хуки и возвращается, когда все завершились
// либо когда контекст истек. Не дождавшиеся хуки остаются брошенными.
func Run(ctx context.Context, hooks ...Hook) {
	log := logger.Log(ctx)

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(h Hook) {
			defer wg.Done()
			if err := h.Fn(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.String("hook", h.Name), zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogTimeoutExceeded)
	}
}
