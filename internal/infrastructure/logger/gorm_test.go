package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func query(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_LogModeClones(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info, WithSlowThreshold(time.Second))
	warn, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, warn.logLevel)
	assert.Equal(t, time.Second, warn.slowThreshold)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		opts    []GormLoggerOption
		begin   time.Time
		err     error
		message string
		logged  zapcore.Level
	}{
		{"error", gormlogger.Error, nil, time.Now(), errors.New("duplicate key"), "SQL Error", zapcore.ErrorLevel},
		{"record not found ignored", gormlogger.Info, nil, time.Now(), gormlogger.ErrRecordNotFound, "", 0},
		{"record not found reported", gormlogger.Error, []GormLoggerOption{WithIgnoreRecordNotFoundError(false)},
			time.Now(), gormlogger.ErrRecordNotFound, "SQL Error", zapcore.ErrorLevel},
		{"slow", gormlogger.Warn, []GormLoggerOption{WithSlowThreshold(time.Millisecond)},
			time.Now().Add(-time.Second), nil, "Slow SQL", zapcore.WarnLevel},
		{"normal at info", gormlogger.Info, nil, time.Now(), nil, "SQL Query", zapcore.DebugLevel},
		{"normal at warn", gormlogger.Warn, nil, time.Now(), nil, "", 0},
		{"silent", gormlogger.Silent, nil, time.Now(), errors.New("x"), "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, tt.opts...)

			gl.Trace(ctx, tt.begin, query("SELECT * FROM events", 3), tt.err)

			if tt.message == "" {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.message, entry.Message)
			assert.Equal(t, tt.logged, entry.Level)
			assert.Equal(t, "req-9", entry.ContextMap()["request_id"])
			assert.Equal(t, "SELECT * FROM events", entry.ContextMap()["sql"])
		})
	}
}

func TestGormLogger_Messages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)
	ctx := context.Background()

	gl.Info(ctx, "migrated %d tables", 9)
	gl.Warn(ctx, "deprecated %s", "column")
	gl.Error(ctx, "failed %s", "insert")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "deprecated column", logs.All()[0].Message)
	assert.Equal(t, "failed insert", logs.All()[1].Message)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}

var _ gormlogger.Interface = (*GormLogger)(nil)
