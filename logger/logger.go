package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLoggers must be called once at startup, before any logging happens.
func InitLoggers() {
	InfoLogger = newLogger("logs/info.log", logrus.InfoLevel)
	ErrorLogger = newLogger("logs/error.log", logrus.WarnLevel)
}

func newLogger(filename string, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotator))

	return l
}
