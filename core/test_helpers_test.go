package core

import "context"

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (p stubLoggerProvider) GetLogger(string) Logger {
	return p.logger
}

type recordingLogger struct {
	stubLogger
	entries *[]string
}

func (l recordingLogger) Warn(msg string, _ ...any) {
	*l.entries = append(*l.entries, "warn:"+msg)
}

func (l recordingLogger) Error(msg string, _ ...any) {
	*l.entries = append(*l.entries, "error:"+msg)
}

func (l recordingLogger) WithContext(context.Context) Logger {
	return l
}
