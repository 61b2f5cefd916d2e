package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/shengfai/socialite/cmd/flags"
	"github.com/shengfai/socialite/internal/conf"
	"github.com/shengfai/socialite/utils"
	"github.com/sirupsen/logrus"
	"github.com/zijiren233/go-colorable"
)

func setLog(l *logrus.Logger) {
	if flags.Global.Dev {
		l.SetLevel(logrus.DebugLevel)
		l.SetReportCaller(true)
		return
	}
	l.SetReportCaller(false)
	level, err := logrus.ParseLevel(conf.Conf.Log.Level)
	if err != nil {
		l.Warnf("unknown log level: %s, use default: info", conf.Conf.Log.Level)
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
}

func callerPrettyfier(f *runtime.Frame) (function string, file string) {
	return f.Function, fmt.Sprintf("%s:%d", f.File, f.Line)
}

func InitLog(ctx context.Context) (err error) {
	setLog(logrus.StandardLogger())
	forceColor := !flags.Server.DisableLogColor && utils.ForceColor()
	if conf.Conf.Log.Enable {
		conf.Conf.Log.FilePath, err = utils.OptFilePath(flags.Global.DataDir, conf.Conf.Log.FilePath)
		if err != nil {
			return fmt.Errorf("log: log file path error: %w", err)
		}
		l := &lumberjack.Logger{
			Filename:   conf.Conf.Log.FilePath,
			MaxSize:    conf.Conf.Log.MaxSize,
			MaxBackups: conf.Conf.Log.MaxBackups,
			MaxAge:     conf.Conf.Log.MaxAge,
			Compress:   conf.Conf.Log.Compress,
		}
		if err := l.Rotate(); err != nil {
			return fmt.Errorf("log: rotate log file error: %w", err)
		}
		var w io.Writer
		if forceColor {
			w = colorable.NewNonColorableWriter(l)
		} else {
			w = l
		}
		if flags.Global.Dev || flags.Global.LogStd {
			logrus.SetOutput(io.MultiWriter(os.Stdout, w))
			logrus.Infof("log: enable log to stdout and file: %s", conf.Conf.Log.FilePath)
		} else {
			logrus.SetOutput(w)
			logrus.Infof("log: disable log to stdout, only log to file: %s", conf.Conf.Log.FilePath)
		}
	}
	switch conf.Conf.Log.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.DateTime,
			CallerPrettyfier: callerPrettyfier,
		})
	default:
		if conf.Conf.Log.LogFormat != "text" {
			logrus.Warnf("unknown log format: %s, use default: text", conf.Conf.Log.LogFormat)
		}
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:      forceColor,
			DisableColors:    !forceColor,
			ForceQuote:       flags.Global.Dev,
			DisableQuote:     !flags.Global.Dev,
			DisableSorting:   true,
			FullTimestamp:    true,
			TimestampFormat:  time.DateTime,
			QuoteEmptyFields: true,
			CallerPrettyfier: callerPrettyfier,
		})
	}
	log.SetOutput(logrus.StandardLogger().Writer())
	return nil
}

// InitStdLog is used by the one-shot commands: logs go to stderr so that
// stdout stays machine readable.
func InitStdLog(ctx context.Context) error {
	logrus.StandardLogger().SetOutput(os.Stderr)
	log.SetOutput(os.Stderr)
	if flags.Global.Dev {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	return nil
}

func InitDiscardLog(ctx context.Context) error {
	logrus.StandardLogger().SetOutput(io.Discard)
	log.SetOutput(io.Discard)
	return nil
}
