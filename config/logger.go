package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"fracbin/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// PanicLogName returns name of the file crash output is redirected to.
func (conf *LoggingConfig) PanicLogName() string {
	return filepath.Join(filepath.Dir(conf.FileLogger.Destination), misc.GetAppName()+"-panic.log")
}

// Prepare returns configured zap logger for use by the program.
//
// Standard output belongs to conversion results, so console logging always
// goes to stderr regardless of level.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	var consoleCore zapcore.Core
	switch conf.ConsoleLogger.Level {
	case "normal":
		consoleCore = zapcore.NewCore(newEncoder(ec), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(zap.InfoLevel))
	case "debug":
		consoleCore = zapcore.NewCore(newEncoder(ec), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(zap.DebugLevel))
	default:
		consoleCore = zapcore.NewNopCore()
	}

	fileCore, newName, err := conf.prepareFileCore(rpt)
	if err != nil {
		return nil, err
	}

	log := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller())
	if len(newName) != 0 {
		log.Warn("Log file was redirected to new location", zap.String("location", newName))
	}
	return log.Named(misc.GetAppName()), nil
}

// prepareFileCore opens log file if requested. When destination is not
// accessible log goes to temporary file and its name is returned.
func (conf *LoggingConfig) prepareFileCore(rpt *Report) (zapcore.Core, string, error) {
	levelRequested, modeRequested := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		// debug report always wants everything
		levelRequested, modeRequested = "debug", "overwrite"
	}

	var level zapcore.Level
	switch levelRequested {
	case "debug":
		level = zap.DebugLevel
	case "normal":
		level = zap.InfoLevel
	default:
		return zapcore.NewNopCore(), "", nil
	}

	opener := func(fname string) (*os.File, error) {
		flags := os.O_CREATE | os.O_WRONLY
		if modeRequested == "append" {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		return os.OpenFile(fname, flags, 0644)
	}

	// capture panic output if possible, quietly ignore failures
	ef, err := opener(conf.PanicLogName())
	if err != nil {
		ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log")
	}
	if err == nil {
		debug.SetCrashOutput(ef, debug.CrashOptions{})
		rpt.Store("panic.log", ef.Name())
		ef.Close()
	}

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())

	var newName string
	f, err := opener(conf.FileLogger.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
		}
		newName = f.Name()
	}
	rpt.Store("final.log", f.Name())
	return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(level)), newName, nil
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
