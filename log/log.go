// log/log.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time
}

// New returns a Logger that writes JSON records to a rotating log file in
// dir (or "doc29-logs" if dir is empty). level is one of debug, info,
// warn, or error.
func New(level string, dir string) *Logger {
	if dir == "" {
		dir = "doc29-logs"
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "doc29.slog"),
		MaxSize:    32, // MB
		MaxBackups: 2,
		Compress:   true,
	}
	if level == "debug" {
		w.MaxSize = 512
	}

	l := NewWithWriter(level, w)
	l.LogFile = w.Filename
	l.LogDir = dir
	return l
}

// NewWithWriter is like New but logs to the provided writer; it is mostly
// useful for tests.
func NewWithWriter(level string, w io.Writer) *Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger: slog.New(h),
		Start:  time.Now(),
	}

	// Start out the logs with some basic information about the system
	// we're running on and the build that's being used.
	l.Info("Hello logging", slog.Time("start", time.Now()))
	sysinfo := []any{
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()),
	}
	if n, err := cpu.Counts(false); err == nil {
		sysinfo = append(sysinfo, slog.Int("PhysicalCores", n))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sysinfo = append(sysinfo, slog.Uint64("TotalMemoryMB", vm.Total/(1024*1024)),
			slog.Uint64("AvailableMemoryMB", vm.Available/(1024*1024)))
	}
	l.Info("System information", sysinfo...)

	var deps, settings []any
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			deps = append(deps, slog.String(dep.Path, dep.Version))
			if dep.Replace != nil {
				deps = append(deps, slog.String("Replacement "+dep.Replace.Path, dep.Replace.Version))
			}
		}
		for _, setting := range bi.Settings {
			settings = append(settings, slog.String(setting.Key, setting.Value))
		}

		l.Info("Build",
			slog.String("Go version", bi.GoVersion),
			slog.String("Path", bi.Path),
			slog.Group("Dependencies", deps...),
			slog.Group("Settings", settings...))
	}

	return l
}

// emit logs msg with the stack of the caller of the logging method
// attached; if printf is set, msg is a format string for args. A nil
// Logger drops debug and info records and hands warnings and errors to
// slog's default logger; errors are always echoed there.
func (l *Logger) emit(level slog.Level, printf bool, msg string, args []any) {
	ctx := context.Background()
	enabled := l != nil && l.Logger.Enabled(ctx, level)
	if !enabled && (level < slog.LevelWarn || (l != nil && level < slog.LevelError)) {
		return
	}

	if printf {
		msg, args = fmt.Sprintf(msg, args...), nil
	}
	args = append([]any{slog.Any("callstack", callstack(nil, 2))}, args...)
	if enabled {
		l.Logger.Log(ctx, level, msg, args...)
	}
	if l == nil || level >= slog.LevelError {
		slog.Log(ctx, level, msg, args...)
	}
}

// Debug, Info, Warn, and Error shadow the embedded slog methods so that
// records carry a callstack and a nil *Logger may be used. WarnContext,
// Log, and the rest of slog's interface pass through unchanged.
func (l *Logger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, false, msg, args) }
func (l *Logger) Info(msg string, args ...any) { l.emit(slog.LevelInfo, false, msg, args) }
func (l *Logger) Warn(msg string, args ...any) { l.emit(slog.LevelWarn, false, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(slog.LevelError, false, msg, args) }

// The f variants format their arguments printf-style into the message.
func (l *Logger) Debugf(msg string, args ...any) { l.emit(slog.LevelDebug, true, msg, args) }
func (l *Logger) Infof(msg string, args ...any) { l.emit(slog.LevelInfo, true, msg, args) }
func (l *Logger) Warnf(msg string, args ...any) { l.emit(slog.LevelWarn, true, msg, args) }
func (l *Logger) Errorf(msg string, args ...any) { l.emit(slog.LevelError, true, msg, args) }

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
	}
}

// CrashExitCode is the process exit status after CatchAndReportCrash has
// reported a panic.
const CrashExitCode = 1

// CatchAndReportCrash must be deferred directly at the top of main(). If a
// panic is in flight, it logs it, writes a crash report to stderr and the
// log directory, and exits with CrashExitCode.
func (l *Logger) CatchAndReportCrash() {
	// Janky way to check if we're running under the debugger.
	if dlv, ok := os.LookupEnv("_"); ok && strings.HasSuffix(dlv, "/dlv") {
		return
	}

	if err := recover(); err != nil {
		l.reportCrash(err)
		os.Exit(CrashExitCode)
	}
}

func (l *Logger) reportCrash(err any) {
	l.Errorf("Crashed: %v", err)

	report := fmt.Sprintf("Crashed: %v\n", err)
	report += "Sys: " + runtime.GOARCH + "/" + runtime.GOOS + "\n"

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range bi.Settings {
			report += setting.Key + ": " + setting.Value + "\n"
		}
	}
	report += string(debug.Stack())

	fmt.Fprintln(os.Stderr, report)

	if l != nil && l.LogDir != "" {
		fn := filepath.Join(l.LogDir, "crash-"+time.Now().Format("20060102-150405")+".txt")
		_ = os.WriteFile(fn, []byte(report), 0o600)
	}
}
