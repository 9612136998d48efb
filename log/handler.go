package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// groupedAttr is a slog.Attr tagged with the group prefix that was open
// when WithAttrs added it, so attrs added before a WithGroup stay
// ungrouped even after the handler opens one for later attrs.
type groupedAttr struct {
	prefix string
	attr   slog.Attr
}

// formatterHandler adapts a LogFormatter to slog.Handler, so Logger can
// render through TextFormatter/JSONFormatter/ColorFormatter instead of
// slog's own built-in handlers. This is the bridge a host application
// uses to pick a human-readable format for a local terminal while still
// writing structured JSON in production via the default handler.
type formatterHandler struct {
	w         io.Writer
	formatter LogFormatter
	level     slog.Leveler
	attrs     []groupedAttr
	groups    []string
}

func (h *formatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.level != nil {
		min = h.level.Level()
	}
	return level >= min
}

func (h *formatterHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]interface{}, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields[a.prefix+a.attr.Key] = a.attr.Value.Any()
	}
	prefix := groupPrefix(h.groups)
	r.Attrs(func(a slog.Attr) bool {
		fields[prefix+a.Key] = a.Value.Any()
		return true
	})

	entry := LogEntry{
		Timestamp: r.Time,
		Level:     levelFromSlog(r.Level),
		Message:   r.Message,
		Fields:    fields,
	}
	_, err := fmt.Fprintln(h.w, h.formatter.Format(entry))
	return err
}

func (h *formatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := groupPrefix(h.groups)
	merged := make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		merged = append(merged, groupedAttr{prefix: prefix, attr: a})
	}
	return &formatterHandler{w: h.w, formatter: h.formatter, level: h.level, attrs: merged, groups: h.groups}
}

func (h *formatterHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &formatterHandler{w: h.w, formatter: h.formatter, level: h.level, attrs: h.attrs, groups: groups}
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	prefix := ""
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

// levelFromSlog maps a slog.Level onto the coarser LogLevel a LogFormatter
// renders. slog has no FATAL level, so nothing maps to it here; a Logger
// never emits one itself.
func levelFromSlog(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}

// FormatterFromName resolves a configuration value (e.g. an
// RSCODEC_LOG_FORMAT environment variable) to a LogFormatter. Unrecognised
// names fall back to JSONFormatter, matching LevelFromString's
// unrecognised-input behavior of degrading to a safe default rather than
// erroring.
func FormatterFromName(name string) LogFormatter {
	switch name {
	case "text":
		return &TextFormatter{}
	case "color":
		return &ColorFormatter{}
	default:
		return &JSONFormatter{}
	}
}
