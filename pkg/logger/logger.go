package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kazanion/config"
)

// Logger 封装zap日志库
type Logger struct {
	*zap.Logger
	rotator *lumberjack.Logger
}

// New 创建只输出到控制台的日志记录器
func New(level string) *Logger {
	return NewWithConfig(level, config.LogFileConfig{})
}

// NewNop 创建不输出任何内容的日志记录器
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// NewWithConfig 使用配置创建日志记录器，启用文件日志时按天切分
func NewWithConfig(level string, fileCfg config.LogFileConfig) *Logger {
	zapLevel := parseLevel(level)
	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(os.Stdout), enabler),
	}

	var rotator *lumberjack.Logger
	if fileCfg.Enabled && fileCfg.Path != "" {
		logDir := filepath.Dir(fileCfg.Path)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			panic(err)
		}

		rotator = &lumberjack.Logger{
			Filename:   dailyFileName(logDir, time.Now()),
			MaxSize:    fileCfg.MaxSize,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAge,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		}
		go rotateDaily(rotator, logDir)

		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), enabler))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{Logger: zl, rotator: rotator}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func dailyFileName(dir string, t time.Time) string {
	return filepath.Join(dir, t.Format("2006-01-02")+".log")
}

// rotateDaily 每天零点切换到新的日志文件
func rotateDaily(rotator *lumberjack.Logger, dir string) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		time.Sleep(next.Sub(now))

		rotator.Filename = dailyFileName(dir, time.Now())
		rotator.Rotate()
	}
}

// With 返回附带固定字段的子日志记录器
func (l *Logger) With(fields ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(fieldsToZapFields(fields...)...), rotator: l.rotator}
}

// Info 记录信息级别日志
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.Logger.Info(msg, fieldsToZapFields(fields...)...)
}

// Debug 记录调试级别日志
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.Logger.Debug(msg, fieldsToZapFields(fields...)...)
}

// Warn 记录警告级别日志
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.Logger.Warn(msg, fieldsToZapFields(fields...)...)
}

// Error 记录错误级别日志
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.Logger.Error(msg, fieldsToZapFields(fields...)...)
}

// Fatal 记录致命错误日志并退出程序
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.Logger.Fatal(msg, fieldsToZapFields(fields...)...)
}

// Close 刷新缓冲并关闭日志文件
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}

// fieldsToZapFields 将 key, value 交替的参数转换为zap字段，单独的error转换为error字段
func fieldsToZapFields(fields ...interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		switch f := fields[i].(type) {
		case error:
			zapFields = append(zapFields, zap.Error(f))
		case string:
			if i+1 < len(fields) {
				if err, ok := fields[i+1].(error); ok {
					zapFields = append(zapFields, zap.NamedError(f, err))
				} else {
					zapFields = append(zapFields, zap.Any(f, fields[i+1]))
				}
				i++
			}
		default:
			zapFields = append(zapFields, zap.Any("field", f))
		}
	}
	return zapFields
}
