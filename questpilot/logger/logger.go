package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeAccount LogType = "ACC"
	TypeAPI     LogType = "API"
	TypeChain   LogType = "CHAIN"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeError   LogType = "ERR"
)

// CustomHandler renders one colored line per record. Writes are serialized
// so lines from concurrent accounts never interleave.
type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewHandler(out io.Writer, level slog.Leveler) *CustomHandler {
	return &CustomHandler{
		opts:   &slog.HandlerOptions{Level: level},
		out:    out,
		mu:     &sync.Mutex{},
		attrs:  make([]slog.Attr, 0),
		groups: make([]string, 0),
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CustomHandler{
		opts:   h.opts,
		out:    h.out,
		mu:     h.mu,
		attrs:  merged,
		groups: h.groups,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	return &CustomHandler{
		opts:   h.opts,
		out:    h.out,
		mu:     h.mu,
		attrs:  h.attrs,
		groups: append(append([]string(nil), h.groups...), name),
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	timestamp := r.Time.Format("15:04:05")
	if r.Time.IsZero() {
		timestamp = time.Now().Format("15:04:05")
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor = colorRed
		levelText = "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor = colorYellow
		levelText = "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor = colorGreen
		levelText = "INFO"
	default:
		levelColor = colorPurple
		levelText = "DEBUG"
	}

	all := h.collect(&r)
	logType := getLogType(all)
	account := getAttr(all, "account")

	message := r.Message
	if account != "" {
		message = fmt.Sprintf("%s#%s%s | %s", colorCyan, account, colorWhite, message)
	}
	if r.Level >= slog.LevelError {
		if location := getErrorLocation(all); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
	}

	var attrsStr strings.Builder
	for _, attr := range all {
		if isInternalAttr(attr.Key) {
			continue
		}
		fmt.Fprintf(&attrsStr, " %s%s=%v%s", colorBlue, h.qualify(attr.Key), attr.Value, colorWhite)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[QP] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		timestamp,
		levelColor,
		levelText,
		colorWhite,
		logType,
		message,
		attrsStr.String(),
		colorReset,
	)
	return err
}

func (h *CustomHandler) collect(r *slog.Record) []slog.Attr {
	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, a)
		return true
	})
	return all
}

func (h *CustomHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

func getLogType(attrs []slog.Attr) LogType {
	switch getAttr(attrs, "type") {
	case "acc":
		return TypeAccount
	case "api":
		return TypeAPI
	case "chain":
		return TypeChain
	case "db":
		return TypeDB
	case "error":
		return TypeError
	}
	return TypeSystem
}

// getAttr returns the last value recorded for key, so record attributes
// override the ones bound with With.
func getAttr(attrs []slog.Attr, key string) string {
	var value string
	for _, a := range attrs {
		if a.Key == key {
			value = a.Value.String()
		}
	}
	return value
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "account", "error_location":
		return true
	}
	return false
}

func getSourceLocation() (string, int) {
	_, file, line, ok := runtime.Caller(5)
	if !ok {
		return "", 0
	}
	return filepath.Base(file), line
}

func getErrorLocation(attrs []slog.Attr) string {
	if location := getAttr(attrs, "error_location"); location != "" {
		return location
	}
	if file, line := getSourceLocation(); file != "" {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return ""
}
