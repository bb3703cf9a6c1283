package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once     sync.Once
	instance *logrus.Logger
)

// Rotation 日志文件滚动参数
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// InitLogger 初始化全局日志，只有第一次调用生效。logFile 非空时同时写标准输出和滚动文件
func InitLogger(logFile, level string, maxSizeMB, maxBackups, maxAge int) *logrus.Logger {
	once.Do(func() {
		instance = newJSONLogger(level)

		out := io.Writer(os.Stdout)
		if logFile != "" {
			file, err := rotatingFile(logFile, Rotation{maxSizeMB, maxBackups, maxAge})
			if err != nil {
				instance.Errorf("日志文件不可用，仅输出到终端: %v", err)
			} else {
				out = io.MultiWriter(os.Stdout, file)
			}
		}
		instance.SetOutput(out)
	})
	return instance
}

// InitFileOnly 只写日志文件，终端客户端使用，避免 JSON 日志混入命令输出
func InitFileOnly(logFile, level string, maxSizeMB, maxBackups, maxAge int) *logrus.Logger {
	l := InitLogger("", level, maxSizeMB, maxBackups, maxAge)

	out := io.Discard
	if logFile != "" {
		if file, err := rotatingFile(logFile, Rotation{maxSizeMB, maxBackups, maxAge}); err == nil {
			out = file
		}
	}
	l.SetOutput(out)
	return l
}

func newJSONLogger(level string) *logrus.Logger {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.DateTime})
	return l
}

// rotatingFile 创建日志目录并返回 lumberjack 滚动写入器
func rotatingFile(logFile string, r Rotation) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   true,
		LocalTime:  true,
	}, nil
}

func GetLogger() *logrus.Logger {
	if instance == nil {
		panic("logger not initialized")
	}
	return instance
}

// WithComponent 返回带 component 字段的日志条目
func WithComponent(name string) *logrus.Entry {
	return GetLogger().WithField("component", name)
}
