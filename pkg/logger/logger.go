package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger - интерфейс логгера для всех компонентов сервиса.
// Аргументы передаются парами ключ-значение.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	Sync() error
}

// Config содержит настройки логгера
type Config struct {
	Level    string `mapstructure:"level" validate:"required,oneof=debug info warn error fatal"`
	Encoding string `mapstructure:"encoding" validate:"required,oneof=json console"`
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New создает логгер с заданными настройками
func New(cfg *Config) (Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	log, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &zapLogger{s: log.Sugar()}, nil
}

// NewDefault создает логгер со стандартными настройками для разработки
func NewDefault() Logger {
	log, err := New(&Config{Level: "debug", Encoding: "console"})
	if err != nil {
		// Конфигурация по умолчанию валидна, сюда не попадаем
		panic(err)
	}
	return log
}

// NewNop создает логгер, который ничего не пишет (для тестов)
func NewNop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debug(msg string, args ...any) {
	l.s.Debugw(msg, args...)
}

func (l *zapLogger) Info(msg string, args ...any) {
	l.s.Infow(msg, args...)
}

func (l *zapLogger) Warn(msg string, args ...any) {
	l.s.Warnw(msg, args...)
}

func (l *zapLogger) Error(msg string, args ...any) {
	l.s.Errorw(msg, args...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(args...)}
}

func (l *zapLogger) Sync() error {
	return l.s.Sync()
}
