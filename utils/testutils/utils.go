package testutils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/benoitkugler/cssom/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	require.Equal(t, exp, got)
}

func AssertNoErr(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}

// AssertInDelta compares floats with an absolute tolerance.
func AssertInDelta(t *testing.T, got, exp, delta float64) {
	t.Helper()
	require.InDelta(t, exp, got, delta)
}

// CapturedLogs stores the messages emitted through
// the package loggers while capturing.
type CapturedLogs struct {
	core    zapcore.Core
	logs    *observer.ObservedLogs
	restore func()
}

// CaptureLogs redirects the package loggers until Close is called.
func CaptureLogs() *CapturedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	restore := logger.Replace(log.Named("progress"), log.Named("warning"))
	return &CapturedLogs{core: core, logs: logs, restore: restore}
}

// Logger returns a logger writing to the capture, for components
// accepting an explicit *zap.Logger.
func (c *CapturedLogs) Logger() *zap.Logger {
	return zap.New(c.core)
}

// Logs returns the captured messages, with their fields formatted as key=value.
func (c *CapturedLogs) Logs() []string {
	var out []string
	for _, entry := range c.logs.All() {
		line := entry.Message
		for _, f := range entry.Context {
			line += " " + f.Key + "=" + fieldString(f)
		}
		out = append(out, line)
	}
	return out
}

// Close restores the previous loggers.
func (c *CapturedLogs) Close() { c.restore() }

// AssertNoLogs checks that nothing has been logged.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if l := c.Logs(); len(l) != 0 {
		t.Fatalf("unexpected logs:\n%s", strings.Join(l, "\n"))
	}
}

// CheckLogs asserts that each expected substring appears in the corresponding log line.
func (c *CapturedLogs) CheckLogs(t *testing.T, expected ...string) {
	t.Helper()
	logs := c.Logs()
	require.Len(t, logs, len(expected), "logs: %v", logs)
	for i, exp := range expected {
		require.Contains(t, logs[i], exp)
	}
}

func fieldString(f zapcore.Field) string {
	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	return fmt.Sprint(enc.Fields[f.Key])
}
