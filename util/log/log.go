package log

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math/big"
	"os"
	"path"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"

	eParser "github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	logNameDebug   = "debug.log"
	logNameInfo    = "info.log"
	logNameWarning = "warn.log"
	logNameError   = "error.log"

	logTimeFormat  = "2006-01-02 15:04:05.000"
	filePathPrefix = "asset-badge"
)

// Logger holds one logrus logger per level so each level goes to its own file.
type Logger struct {
	Debug *logrus.Logger
	Info  *logrus.Logger
	Warn  *logrus.Logger
	Error *logrus.Logger
}

var (
	logger    Logger
	logPath   = "./logs"
	debug     bool
	logPrefix string
	initLock  sync.Mutex
)

func init() {
	// Usable before Init, e.g. from library code under test.
	discard := func(level logrus.Level) *logrus.Logger {
		return &logrus.Logger{Out: ioutil.Discard, Formatter: new(logFormatter), Level: level, Hooks: make(logrus.LevelHooks)}
	}

	logger = Logger{
		Debug: discard(logrus.DebugLevel),
		Info:  discard(logrus.InfoLevel),
		Warn:  discard(logrus.WarnLevel),
		Error: discard(logrus.ErrorLevel),
	}
}

// Init creates global logger instances.
func Init(debugMode bool) {
	initLock.Lock()
	defer initLock.Unlock()

	err := os.MkdirAll(logPath, 0700)
	if err != nil {
		panic(err)
	}

	debug = debugMode

	logger = Logger{
		Debug: newLogger(logNameDebug, logrus.DebugLevel),
		Info:  newLogger(logNameInfo, logrus.InfoLevel),
		Warn:  newLogger(logNameWarning, logrus.WarnLevel),
		Error: newLogger(logNameError, logrus.ErrorLevel),
	}
}

// SetPrefix sets the output prefix for the logger, usually the network label.
func SetPrefix(prefix string) {
	logPrefix = prefix
}

func newLogger(fileName string, level logrus.Level) *logrus.Logger {
	fileName = path.Join(logPath, fileName)

	l := &logrus.Logger{
		Formatter: new(logFormatter),
		Level:     level,
		Hooks:     make(logrus.LevelHooks),
	}

	if !debug && level >= logrus.DebugLevel {
		l.SetOutput(ioutil.Discard)
		return l
	}

	l.SetOutput(io.MultiWriter(os.Stdout, newLogWriter(fileName)))
	return l
}

func newLogWriter(logPath string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 20,
		MaxAge:     30,
	}
}

// GetErrorLogger returns error logger
func GetErrorLogger() *logrus.Logger {
	return logger.Error
}

// logFormatter defines custom formatter for logrus
type logFormatter struct{}

// Format formats log output, appending entry fields as sorted key=value pairs.
func (f *logFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString(e.Time.Format(logTimeFormat))
	b.WriteByte(' ')
	if logPrefix != "" {
		fmt.Fprintf(&b, "[%s]", logPrefix)
	}
	fmt.Fprintf(&b, "[%s] ", e.Level.String())

	msg := strings.TrimSuffix(e.Message, "\n")
	b.WriteString(msg)

	if len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
		}
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// WarnWithUnit returns an entry of the warn logger tagged with the asset unit.
func WarnWithUnit(unit string) *logrus.Entry {
	return logger.Warn.WithField("unit", unit)
}

// Debugf logs in Debug level.
func Debugf(format string, v ...interface{}) {
	logger.Debug.Debug(logHandler(format, v))
}

// Debug logs in Debug level.
func Debug(v ...interface{}) {
	logger.Debug.Debug(logHandler("", v))
}

// Infof logs in Info level.
func Infof(format string, v ...interface{}) {
	logger.Info.Info(logHandler(format, v))
}

// Info logs in Info level.
func Info(v ...interface{}) {
	logger.Info.Info(logHandler("", v))
}

// Warnf logs in Warn level.
func Warnf(format string, v ...interface{}) {
	logger.Warn.Warn(logHandler(format, v))
}

// Warn logs in Warn level.
func Warn(v ...interface{}) {
	logger.Warn.Warn(logHandler("", v))
}

// Errorf logs in Error level.
func Errorf(format string, v ...interface{}) {
	logger.Error.Error(logHandler(format, v))
}

// Error logs in Error level.
func Error(v ...interface{}) {
	logger.Error.Error(logHandler("", v))
}

// Fatalf logs in Fatal level.
func Fatalf(format string, v ...interface{}) {
	logger.Error.Fatal(logHandler(format, v))
}

// Fatal logs in Fatal level.
func Fatal(v ...interface{}) {
	logger.Error.Fatal(logHandler("", v))
}

func logHandler(format string, v []interface{}) string {
	msg := ""
	if debug {
		msg = fmt.Sprintf("[%s] ", fileInfo())
	}

	if v == nil {
		return msg + format
	}

	for i := 0; i < len(v); i++ {
		v[i] = extract(v[i])
	}

	if format == "" {
		return msg + fmt.Sprint(v...)
	}

	return msg + fmt.Sprintf(format, v...)
}

func extract(v interface{}) interface{} {
	if v == nil {
		return nil
	}

	if e, ok := v.(error); ok {
		// Only debug output carries the full stack.
		if !debug {
			return e.Error()
		}
		err := eParser.Wrap(e, 3)
		return fmt.Sprintf("%s\n%s", err.Error(), string(err.Stack()))
	}

	if n, ok := v.(*big.Int); ok {
		return n.String()
	}

	if stringer, ok := v.(fmt.Stringer); ok {
		return stringer.String()
	}

	t := reflect.TypeOf(v)

	switch t.Kind() {
	case reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%+v", v)
		}
		return string(b)
	case reflect.Ptr:
		if reflect.ValueOf(v).IsNil() {
			return "<nil>"
		}
		return extract(reflect.ValueOf(v).Elem().Interface())
	default:
		return v
	}
}

func fileInfo() string {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "<???>:0"
	}

	if slash := strings.LastIndex(file, filePathPrefix); slash >= 0 {
		file = file[slash:]
		if i := strings.Index(file, "/"); i >= 0 {
			file = file[i+1:]
		}
	}

	return fmt.Sprintf("%s:%d", file, line)
}
