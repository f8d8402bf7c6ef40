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

func newObservedGorm(level gormlogger.LogLevel, slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, slow), recorded
}

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_LogMode(t *testing.T) {
	l, _ := newObservedGorm(gormlogger.Info, 0)
	other := l.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, l.logLevel)
	copied, ok := other.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, copied.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	l, recorded := newObservedGorm(gormlogger.Warn, 0)
	ctx := context.Background()

	l.Info(ctx, "hidden %d", 1)
	l.Warn(ctx, "shown %s", "warn")
	l.Error(ctx, "shown %s", "error")

	logs := recorded.All()
	require.Len(t, logs, 2)
	assert.Equal(t, "shown warn", logs[0].Message)
	assert.Equal(t, "shown error", logs[1].Message)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-5")

	t.Run("error", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Warn, 0)
		l.Trace(ctx, time.Now(), sqlFn("INSERT INTO memo_entry", 0), errors.New("fk"))
		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
		assert.Equal(t, "req-5", logs[0].ContextMap()["request_id"])
	})

	t.Run("record not found is skipped", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Info, 0)
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("slow", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Warn, time.Millisecond)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn("SELECT * FROM register_entry", 3), nil)
		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
	})

	t.Run("query at info", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Info, 0)
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 1), nil)
		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Query", logs[0].Message)
	})

	t.Run("silent", func(t *testing.T) {
		l, recorded := newObservedGorm(gormlogger.Silent, 0)
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 1), errors.New("x"))
		assert.Empty(t, recorded.All())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("other"))
}
