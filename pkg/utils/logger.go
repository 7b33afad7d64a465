package utils

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger logs to stdout and to a rotating <path>/<name>.log file.
// Debug switches to the console encoder at debug level.
func InitLogger(name, path string, debug bool) (*zap.Logger, error) {
	if path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, err
		}
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(path, name+".log"),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	}

	return newLogger(name, debug, file, os.Stdout), nil
}

func newLogger(name string, debug bool, sinks ...io.Writer) *zap.Logger {
	encoder, level := encoderFor(debug)

	cores := make([]zapcore.Core, 0, len(sinks))
	for _, sink := range sinks {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(sink), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("app", name))
}

func encoderFor(debug bool) (zapcore.Encoder, zapcore.Level) {
	cfg := zap.NewProductionEncoderConfig()
	if debug {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = "caller"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if debug {
		return zapcore.NewConsoleEncoder(cfg), zap.DebugLevel
	}
	return zapcore.NewJSONEncoder(cfg), zap.InfoLevel
}
