package core

import (
	"context"
	"testing"
)

type leveledLogger struct {
	stubLogger
	level *string
	args  *[]any
}

func (l leveledLogger) Debug(_ string, args ...any) { *l.level = "debug"; *l.args = args }
func (l leveledLogger) Info(_ string, args ...any)  { *l.level = "info"; *l.args = args }
func (l leveledLogger) Warn(_ string, args ...any)  { *l.level = "warn"; *l.args = args }
func (l leveledLogger) Error(_ string, args ...any) { *l.level = "error"; *l.args = args }
func (l leveledLogger) WithContext(context.Context) Logger {
	return l
}

func TestLogWithLevel_SortsFieldsAndPicksLevel(t *testing.T) {
	var level string
	var args []any
	logger := leveledLogger{level: &level, args: &args}

	LogWithLevel(context.Background(), logger, " WARN ", "retrying", map[string]any{"b": 2, "a": 1})
	if level != "warn" {
		t.Fatalf("expected warn level, got %q", level)
	}
	if len(args) != 4 || args[0] != "a" || args[1] != 1 || args[2] != "b" || args[3] != 2 {
		t.Fatalf("expected sorted key/value args, got %v", args)
	}

	LogWithLevel(context.Background(), logger, "unknown", "done", nil)
	if level != "info" || len(args) != 0 {
		t.Fatalf("expected info with no args, got %q %v", level, args)
	}

	LogWithLevel(context.Background(), nil, "error", "ignored", nil)
}
