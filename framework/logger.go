package framework

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the interface for all diagnostic logging within the harness. It is
// deliberately compatible with the standard library's log.Logger.
type Logger interface {
	Println(args ...interface{})
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Println(args ...interface{})                {}
func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger records all output sent to it, so that diagnostic output from a
// fixture's lifetime can be replayed later (for instance, only when a test fails).
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Println(args ...interface{}) {
	m := strings.TrimRight(fmt.Sprintln(args...), "\r\n") // Sprintln appends a newline
	l.append(CapturedMessage{Time: time.Now(), Message: m})
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.append(CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
}

func (l *CapturingLogger) append(m CapturedMessage) {
	l.lock.Lock()
	l.output = append(l.output, m)
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) ToString(prefix string) string {
	ret := ""
	for _, m := range output {
		if ret != "" {
			ret += "\n"
		}
		ret += fmt.Sprintf("%s[%s] %s",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
	return ret
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

// LoggerWithPrefix returns a Logger that prepends a fixed prefix to every message
// before delegating to baseLogger.
func LoggerWithPrefix(baseLogger Logger, prefix string) Logger {
	return prefixedLogger{baseLogger, prefix}
}

func (p prefixedLogger) Println(args ...interface{}) {
	p.base.Println(append([]interface{}{p.prefix}, args...)...)
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}
