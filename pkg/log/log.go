// Copyright 2020 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is the logging facade used by all components. It wraps zap and
// exposes a small key/value interface:
//
//	log.Info("Switch tracked", "switch", id, "color", c)
//
// Components should prefer the logger attached to their context, see FromCtx.
package log

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

const (
	// DefaultConsoleLevel is the default log level for the console.
	DefaultConsoleLevel = "info"
	// DefaultStacktraceLevel is the default log level for which stack traces
	// are included.
	DefaultStacktraceLevel = "none"
)

// Level of a log entry.
type Level zapcore.Level

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

// Config configures the console logger.
type Config struct {
	Console ConsoleConfig `toml:"console,omitempty"`
}

// ConsoleConfig is the config for the console logger.
type ConsoleConfig struct {
	// Level of console logging (defaults to DefaultConsoleLevel).
	Level string `toml:"level,omitempty"`
	// Format of the console logging. (human|json). If empty, human is used
	// when stderr is a terminal and json otherwise.
	Format string `toml:"format,omitempty"`
	// StacktraceLevel sets from which level stacktraces are included.
	StacktraceLevel string `toml:"stacktrace_level,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file
	// name and line number.
	DisableCaller bool `toml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields in cfg to their default values (if they
// have one).
func (c *Config) InitDefaults() {
	if c.Console.Level == "" {
		c.Console.Level = DefaultConsoleLevel
	}
	if c.Console.StacktraceLevel == "" {
		c.Console.StacktraceLevel = DefaultStacktraceLevel
	}
	if c.Console.Format == "" {
		c.Console.Format = "json"
		if isatty.IsTerminal(os.Stderr.Fd()) {
			c.Console.Format = "human"
		}
	}
}

// Validate checks the log levels and format.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Console.Level); err != nil {
		return err
	}
	if c.Console.StacktraceLevel != "none" {
		if _, err := parseLevel(c.Console.StacktraceLevel); err != nil {
			return err
		}
	}
	switch c.Console.Format {
	case "", "human", "json":
		return nil
	default:
		return serrors.New("unsupported log format", "format", c.Console.Format)
	}
}

var (
	rootMtx sync.RWMutex
	root    = &logger{logger: zap.NewNop()}
	level   = zap.NewAtomicLevel()
)

// Setup configures the root logger from cfg. It is safe to call Setup more
// than once; the last call wins.
func Setup(cfg Config, opts ...Option) error {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, _ := parseLevel(cfg.Console.Level)
	level.SetLevel(lvl)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Console.Format == "human" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if !isatty.IsTerminal(os.Stderr.Fd()) {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)

	o := applyOptions(opts)
	zopts := []zap.Option{zap.AddCallerSkip(1 + o.callerSkip)}
	if !cfg.Console.DisableCaller {
		zopts = append(zopts, zap.AddCaller())
	}
	if cfg.Console.StacktraceLevel != "none" {
		st, _ := parseLevel(cfg.Console.StacktraceLevel)
		zopts = append(zopts, zap.AddStacktrace(st))
	}
	if o.entriesCounter != nil {
		zopts = append(zopts, zap.Hooks(o.entriesCounter.hook))
	}
	SetRoot(&logger{logger: zap.New(core, zopts...)})
	return nil
}

// SetRoot replaces the root logger.
func SetRoot(l Logger) {
	rootMtx.Lock()
	defer rootMtx.Unlock()
	if zl, ok := l.(*logger); ok {
		root = zl
		return
	}
	root = &logger{logger: zap.NewNop(), delegate: l}
}

// Root returns the root logger. It's a logger without any context.
func Root() Logger {
	rootMtx.RLock()
	defer rootMtx.RUnlock()
	if root.delegate != nil {
		return root.delegate
	}
	return root
}

// SetLevel changes the level of the root logger at runtime.
func SetLevel(lvl string) error {
	l, err := parseLevel(lvl)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// ConsoleLevel returns the current console level.
func ConsoleLevel() string {
	return level.Level().String()
}

// New creates a logger with the given context.
func New(ctx ...any) Logger {
	return Root().New(ctx...)
}

// Debug logs at debug level.
func Debug(msg string, ctx ...any) {
	Root().Debug(msg, ctx...)
}

// Info logs at info level.
func Info(msg string, ctx ...any) {
	Root().Info(msg, ctx...)
}

// Error logs at error level.
func Error(msg string, ctx ...any) {
	Root().Error(msg, ctx...)
}

// SafeDebug logs to the logger if it is not nil.
func SafeDebug(l Logger, msg string, ctx ...any) {
	if l != nil {
		l.Debug(msg, ctx...)
	}
}

// SafeInfo logs to the logger if it is not nil.
func SafeInfo(l Logger, msg string, ctx ...any) {
	if l != nil {
		l.Info(msg, ctx...)
	}
}

// SafeError logs to the logger if it is not nil.
func SafeError(l Logger, msg string, ctx ...any) {
	if l != nil {
		l.Error(msg, ctx...)
	}
}

// HandlePanic catches panics and logs them. It must be deferred at the top of
// every goroutine. The panic is re-raised after it has been logged.
func HandlePanic() {
	if msg := recover(); msg != nil {
		Root().Error("Panic", "msg", msg, "stack", string(debug.Stack()))
		Flush()
		panic(msg)
	}
}

// Flush writes the logs to the underlying buffer.
func Flush() {
	rootMtx.RLock()
	defer rootMtx.RUnlock()
	_ = root.logger.Sync()
}

type logger struct {
	logger   *zap.Logger
	delegate Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

func (l *logger) WithOptions(opts ...zap.Option) Logger {
	return &logger{logger: l.logger.WithOptions(opts...)}
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		if err, ok := ctx[i+1].(error); ok {
			if m, ok := err.(zapcore.ObjectMarshaler); ok {
				fields = append(fields, zap.Object(key, m))
				continue
			}
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}

func parseLevel(lvl string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return l, serrors.Wrap("parsing log level", err, "level", lvl)
	}
	return l, nil
}
