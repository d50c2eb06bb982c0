// SPDX-License-Identifier: GPL-3.0-or-later
package log

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggers   map[string]*logrus.Logger
	loggersMu sync.RWMutex
)

func NewPrefixLogger(prefix string) *PrefixLogger {
	stringPrefix := fmt.Sprintf("%s:\t", prefix)

	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = "15:04:05"
	formatter.DisableColors = strings.Contains(runtime.GOOS, "windows")
	return &PrefixLogger{
		formatter,
		[]byte(stringPrefix),
	}
}

type PrefixLogger struct {
	formatter logrus.Formatter
	prefix    []byte
}

func (f *PrefixLogger) Format(entry *logrus.Entry) ([]byte, error) {
	text, err := f.formatter.Format(entry)
	if err != nil {
		return nil, err
	}
	return append(f.prefix, text...), nil
}

const (
	LOG_MAIN        = "MA"
	LOG_CRISPIN     = "CR"
	LOG_CACHE       = "CA"
	LOG_PERSISTENCE = "PI"
	LOG_IMAP        = "IM"
	LOG_POOL        = "PO"
	LOG_SYNC        = "SY"
)

var prefixes = []string{
	LOG_MAIN,
	LOG_CRISPIN,
	LOG_CACHE,
	LOG_PERSISTENCE,
	LOG_IMAP,
	LOG_POOL,
	LOG_SYNC,
}

func getLevel(loglevel string) logrus.Level {
	switch strings.ToLower(loglevel) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "panic":
		return logrus.PanicLevel
	case "fatal":
		return logrus.FatalLevel
	}

	// Info is default
	return logrus.InfoLevel
}

func initLogger(prefix, loglevel string) {
	loggers[prefix] = logrus.New()
	loggers[prefix].Level = getLevel(loglevel)
	loggers[prefix].Formatter = NewPrefixLogger(prefix)
}

func InitLogging(loglevel string) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	loggers = make(map[string]*logrus.Logger)
	for _, prefix := range prefixes {
		initLogger(prefix, loglevel)
	}
}

// InitNullLogging discards all output, used by tests.
func InitNullLogging() {
	InitLogging("error")

	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		l.Out = io.Discard
	}
}

func SetLogLevel(loglevel string) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, v := range loggers {
		v.Level = getLevel(loglevel)
	}
}

func Logger(logger string) *logrus.Logger {
	loggersMu.RLock()
	defer loggersMu.RUnlock()

	l, ok := loggers[logger]
	if !ok {
		panic("Logger " + logger + " unknown")
	}

	return l
}

// AccountLogger returns the logger for prefix with the account id attached to every entry.
func AccountLogger(logger string, accountId uint64) *logrus.Entry {
	return Logger(logger).WithField("account", accountId)
}
