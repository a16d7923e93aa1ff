package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     logger.Environment
		level   string
		wantErr bool
	}{
		{name: "development default level", env: logger.Development, level: ""},
		{name: "production with level", env: logger.Production, level: "warn"},
		{name: "invalid level", env: logger.Production, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.NewLogger(tt.env, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), log)

	got, err := logger.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, log, got)
}

func TestFromContextMissing(t *testing.T) {
	_, err := logger.FromContext(context.Background())
	assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
}

func TestLogFallsBack(t *testing.T) {
	// Без логгера в контексте и глобального Log обязан вернуть рабочий экземпляр.
	log := logger.Log(context.Background())
	assert.NotNil(t, log)
}

func TestLogPrefersContext(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.Log(ctx))
}

func TestRequestIDContext(t *testing.T) {
	ctx := logger.NewRequestIDContext(context.Background(), "req-1")
	id, ok := logger.GetRequestID(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-1", id)
}

func TestRequestIDGenerated(t *testing.T) {
	ctx := logger.NewRequestIDContext(context.Background(), "")
	id, ok := logger.GetRequestID(ctx)
	require.True(t, ok)
	assert.NotEmpty(t, id)

	other := logger.GenerateRequestID()
	assert.NotEqual(t, id, other)
}
