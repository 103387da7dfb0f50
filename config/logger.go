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

	"dtex/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none quiet debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// lowestLevel maps configured level names to the lowest enabled zap level.
// Translation diagnostics are warnings, so "quiet" hides them.
var lowestLevel = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"normal": zapcore.InfoLevel,
	"quiet":  zapcore.ErrorLevel,
}

// Prepare builds program logger: informational messages go to stdout, errors
// to stderr and, when requested, everything to the log file. With debug
// report enabled file log is always written at debug level and stored in the
// report.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	cores := consoleCores(conf.ConsoleLogger.Level)

	fileConf := conf.FileLogger
	if rpt != nil {
		fileConf.Level, fileConf.Mode = "debug", "overwrite"
	}

	var redirected string
	if lvl, ok := lowestLevel[fileConf.Level]; ok {
		capturePanics(fileConf.Destination, fileConf.Mode, rpt)

		f, err := openLog(fileConf.Destination, fileConf.Mode)
		if err != nil {
			if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
				return nil, fmt.Errorf("unable to access file log destination (%s): %w", fileConf.Destination, err)
			}
			redirected = f.Name()
		}
		rpt.Store("final.log", f.Name())
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(lvl)))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if redirected != "" {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

// consoleCores splits console output: errors to stderr without verbose
// details, the rest to stdout.
func consoleCores(level string) []zapcore.Core {
	lvl, ok := lowestLevel[level]
	if !ok {
		return nil
	}
	cores := []zapcore.Core{newConsoleCore(os.Stderr, true, levelRange(zapcore.ErrorLevel, zapcore.InvalidLevel))}
	if lvl < zapcore.ErrorLevel {
		cores = append(cores, newConsoleCore(os.Stdout, false, levelRange(lvl, zapcore.ErrorLevel)))
	}
	return cores
}

// levelRange enables levels in [from, to).
func levelRange(from, to zapcore.Level) zap.LevelEnablerFunc {
	return func(lvl zapcore.Level) bool {
		return from <= lvl && (to == zapcore.InvalidLevel || lvl < to)
	}
}

func newConsoleCore(stream *os.File, flatErrors bool, enabler zap.LevelEnablerFunc) zapcore.Core {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	}
	var enc zapcore.Encoder = zapcore.NewConsoleEncoder(ec)
	if flatErrors {
		enc = flatErrorEncoder{enc}
	}
	return zapcore.NewCore(enc, zapcore.Lock(stream), enabler)
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if mode == "append" {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.OpenFile(fname, flags, 0644)
}

// capturePanics directs runtime crash output next to the log file or into
// temporary directory. Failure is ignored.
func capturePanics(destination, mode string, rpt *Report) {
	ef, err := openLog(filepath.Join(filepath.Dir(destination), misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			return
		}
	}
	defer ef.Close()

	if err := debug.SetCrashOutput(ef, debug.CrashOptions{}); err != nil {
		return
	}
	rpt.Store("panic.log", ef.Name())
}

// flatErrorEncoder replaces error fields with their plain message.
// Aggregated batch errors carry long "errorVerbose" output which is only
// useful in the file log.
type flatErrorEncoder struct {
	zapcore.Encoder
}

func (c flatErrorEncoder) Clone() zapcore.Encoder {
	return flatErrorEncoder{c.Encoder.Clone()}
}

func (c flatErrorEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	flat := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if e, ok := f.Interface.(error); ok && f.Type == zapcore.ErrorType {
			f.Interface = errors.New(e.Error())
		}
		flat[i] = f
	}
	return c.Encoder.EncodeEntry(ent, flat)
}
