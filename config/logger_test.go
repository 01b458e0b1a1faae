package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLoggingPrepare_FileLog(t *testing.T) {
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: filepath.Join(dir, "fracbin.log"), Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("debug message")
	log.Info("info message")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
	for _, msg := range []string{"debug message", "info message", "fracbin"} {
		if !strings.Contains(string(data), msg) {
			t.Errorf("log does not contain %q:\n%s", msg, data)
		}
	}
	if _, err := os.Stat(conf.PanicLogName()); err != nil {
		t.Errorf("panic log was not created: %v", err)
	}
}

func TestLoggingPrepare_NormalLevelSkipsDebug(t *testing.T) {
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "fracbin.log")},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("hidden")
	log.Warn("visible")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug message leaked into normal level log")
	}
	if !strings.Contains(string(data), "visible") {
		t.Error("warning is missing from log")
	}
}

func TestLoggingPrepare_ReportForcesDebug(t *testing.T) {
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("report Prepare() error = %v", err)
	}
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(dir, "fracbin.log")},
	}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("for the report")
	_ = log.Sync()

	if err := rpt.Close(); err != nil {
		t.Fatalf("report Close() error = %v", err)
	}
	files := readArchive(t, filepath.Join(dir, "report.zip"))
	if !strings.Contains(files["final.log"], "for the report") {
		t.Errorf("report log does not contain debug message: %q", files["final.log"])
	}
}

func TestLoggingPrepare_ConsoleOnly(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "normal"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be disabled for normal console")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should be enabled for normal console")
	}
}
