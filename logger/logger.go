package logger

import (
	"os"
	"path"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeFormat = "2006-01-02 15:04:05.000"
	maxAge            = 7 * 24 * time.Hour
	rotationTime      = 24 * time.Hour
)

var logger = newLogger()

type Configuration struct {
	Level         logrus.Level
	TimeFormat    string
	LogPath       string
	EnableFileLog bool
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure 重新设置全局 logger, 开启文件日志时按级别写入 LogPath 下的滚动文件
func Configure(config *Configuration) error {
	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	l := logrus.New()
	l.SetLevel(config.Level)
	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: timeFormat,
		FullTimestamp:   true,
	})

	if config.EnableFileLog {
		writerMap := lfshook.WriterMap{}
		for _, level := range []logrus.Level{logrus.DebugLevel, logrus.InfoLevel, logrus.WarnLevel, logrus.ErrorLevel} {
			writer, err := setupWriter(config.LogPath, level.String())
			if err != nil {
				return err
			}
			writerMap[level] = writer
		}
		// 文件中禁用颜色代码
		l.AddHook(lfshook.NewHook(writerMap, &logrus.TextFormatter{
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
			DisableColors:   true,
		}))
	}

	l.SetOutput(os.Stderr)
	logger = l
	return nil
}

func setupWriter(logPath string, level string) (*rotatelogs.RotateLogs, error) {
	return rotatelogs.New(
		path.Join(logPath, level)+".%Y%m%d.log",
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
	)
}

// ParseLevel 解析不了的级别按 info 处理
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// WithFields 带上结构化字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func InfoF(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func DebugF(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func WarnF(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func ErrorF(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

func IsEnabledDebug() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}
