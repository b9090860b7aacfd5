package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/fitprogress/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogMaxSizeMB = 50

type LoggerSetupParams struct {
	LogFileName      string
	LogMaxSizeMB     int
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger: format, level, output (stdout,
// a rotated log file, or both) and the sentry hook for errors.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(newOutput(params))
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up successfully")
}

func newOutput(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	maxSize := params.LogMaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultLogMaxSizeMB
	}
	// rotated files are kept, no MaxBackups or MaxAge
	fileWriter := &lumberjack.Logger{
		Filename:  logFileName(params.LogFileName),
		MaxSize:   maxSize,
		LocalTime: false,
		Compress:  true,
	}

	if !params.LogToStdout {
		return fileWriter
	}
	logrus.Println("writing logs to file and STDOUT")
	return pkg.NewCombinedWriter(os.Stdout, fileWriter)
}

func logFileName(name string) string {
	if strings.HasSuffix(name, ".log") {
		return name
	}
	return name + ".log"
}

// GetLevel parses a level name case-insensitively, unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
