package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized records either as one line of key=value
// pairs or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	json   bool
	attrs  []slog.Attr // from WithAttrs, keys already qualified
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		json: json,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, h.builtin(slog.Time(slog.TimeKey, r.Time)))
	}

	fields = append(fields, h.builtin(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			loc := src.File + ":" + strconv.Itoa(src.Line)
			fields = append(fields, h.builtin(slog.String(slog.SourceKey, loc)))
		}
	}

	fields = append(fields, h.builtin(slog.String(slog.MessageKey, r.Message)))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.qualify(a))

		return true
	})

	var buf bytes.Buffer

	if h.json {
		writeObject(&buf, fields, r.Level)
	} else {
		writeLine(&buf, fields, r.Level)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}

	return c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.groups = append(c.groups, name)

	return c
}

func (h *prettyHandler) clone() *prettyHandler {
	c := *h
	c.attrs = slices.Clip(h.attrs)
	c.groups = slices.Clip(h.groups)

	return &c
}

func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) > 0 && a.Key != "" {
		a.Key = strings.Join(h.groups, ".") + "." + a.Key
	}

	return a
}

func (h *prettyHandler) builtin(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr != nil {
		return h.opts.ReplaceAttr(nil, a)
	}

	return a
}

// flatten calls fn for each leaf of a, joining nested group keys with '.'.
func flatten(prefix string, a slog.Attr, fn func(key string, v slog.Value)) {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() != slog.KindGroup {
		return
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if v.Kind() != slog.KindGroup {
		fn(key, v)

		return
	}

	for _, g := range v.Group() {
		flatten(key, g, fn)
	}
}

// writeLine writes fields as colored key=value pairs on one line.
func writeLine(buf *bytes.Buffer, fields []slog.Attr, level slog.Level) {
	for _, a := range fields {
		flatten("", a, func(key string, v slog.Value) {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}

			paint(buf, colorGray, key)
			buf.WriteByte('=')
			paintValue(buf, key, v, level)
		})
	}

	buf.WriteByte('\n')
}

// writeObject writes fields as an indented object, one key per line.
func writeObject(buf *bytes.Buffer, fields []slog.Attr, level slog.Level) {
	buf.WriteString("{\n")

	first := true

	for _, a := range fields {
		flatten("", a, func(key string, v slog.Value) {
			if !first {
				buf.WriteString(",\n")
			}

			first = false

			buf.WriteString("  ")
			paint(buf, colorGray, key)
			buf.WriteString(": ")
			paintValue(buf, key, v, level)
		})
	}

	buf.WriteString("\n}\n")
}

func paint(buf *bytes.Buffer, color, s string) {
	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(colorReset)
}

func paintValue(buf *bytes.Buffer, key string, v slog.Value, level slog.Level) {
	if key == slog.LevelKey {
		paint(buf, levelColor(level), v.String())

		return
	}

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		paint(buf, colorYellow, v.String())

	case slog.KindBool:
		if v.Bool() {
			paint(buf, colorGreen, "true")
		} else {
			paint(buf, colorRed, "false")
		}

	case slog.KindDuration:
		paint(buf, colorMagenta, v.String())

	case slog.KindTime:
		paint(buf, colorBlue, v.String())

	default:
		if v.Kind() == slog.KindAny && v.Any() == nil {
			paint(buf, colorGray, "null")

			return
		}

		paint(buf, colorCyan, v.String())
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case level >= slog.LevelDebug:
		return colorBlue
	default:
		return colorMagenta
	}
}
