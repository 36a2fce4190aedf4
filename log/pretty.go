package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
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

// prettyState is shared by both pretty handlers: options, the output guard,
// and the attributes and group prefix accumulated through WithAttrs and
// WithGroup.
type prettyState struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	prefix string
}

func (s prettyState) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if s.opts.Level != nil {
		threshold = s.opts.Level.Level()
	}

	return level >= threshold
}

func (s prettyState) withAttrs(attrs []slog.Attr) prettyState {
	next := s
	next.attrs = make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	next.attrs = append(next.attrs, s.attrs...)

	for _, a := range attrs {
		a.Key = s.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}

	return next
}

func (s prettyState) withGroup(name string) prettyState {
	if name == "" {
		return s
	}

	next := s
	next.prefix = s.prefix + name + "."

	return next
}

// header resolves the time, level, and source fields of a record after
// applying the configured ReplaceAttr, returning them in output order.
func (s prettyState) header(r slog.Record) []slog.Attr {
	fields := make([]slog.Attr, 0, 3)

	if !r.Time.IsZero() {
		fields = append(fields, s.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	fields = append(fields, slog.String(slog.LevelKey, Level(r.Level).String()))

	if s.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	return fields
}

func (s prettyState) replace(a slog.Attr) slog.Attr {
	if s.opts.ReplaceAttr == nil {
		return a
	}

	return s.opts.ReplaceAttr(nil, a)
}

// body returns the record's own attributes, prefixed by the open group.
func (s prettyState) body(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(s.attrs)+r.NumAttrs())
	attrs = append(attrs, s.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		a.Key = s.prefix + a.Key
		attrs = append(attrs, a)

		return true
	})

	return attrs
}

func (s prettyState) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct{ prettyState }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{prettyState{opts: *opts, mu: &sync.Mutex{}, w: w}}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		if a.Key == "" {
			continue
		}

		h.writeAttr(buf, a, r.Level)
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message), r.Level)

	for _, a := range h.body(r) {
		h.writeAttr(buf, a, r.Level)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(
	buf *bytes.Buffer,
	a slog.Attr,
	level slog.Level,
) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	if a.Key == slog.LevelKey {
		buf.WriteString(levelColor(level))
		buf.WriteString(a.Value.String())
		buf.WriteString(colorReset)

		return
	}

	writeColored(buf, a.Value.Resolve())
}

// prettyJSONHandler implements a pretty-printed JSON-like handler for log
// messages.
type prettyJSONHandler struct{ prettyState }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyState{opts: *opts, mu: &sync.Mutex{}, w: w}}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{\n")

	first := true
	field := func(a slog.Attr) {
		if a.Key == "" {
			return
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.WriteString(a.Key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")

		if a.Key == slog.LevelKey {
			buf.WriteString(levelColor(r.Level))
			buf.WriteString(a.Value.String())
			buf.WriteString(colorReset)

			return
		}

		writeColored(buf, a.Value.Resolve())
	}

	for _, a := range h.header(r) {
		field(a)
	}

	field(slog.String(slog.MessageKey, r.Message))

	for _, a := range h.body(r) {
		field(a)
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}

// writeColored renders a resolved value without quotes, colored by kind.
func writeColored(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())

	case slog.KindInt64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		buf.WriteString(colorYellow)
		buf.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(colorGreen)
		} else {
			buf.WriteString(colorRed)
		}

		buf.WriteString(strconv.FormatBool(v.Bool()))

	case slog.KindDuration:
		buf.WriteString(colorMagenta)
		buf.WriteString(v.Duration().String())

	case slog.KindTime:
		buf.WriteString(colorBlue)
		buf.WriteString(v.Time().Format(time.RFC3339))

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+"="+a.Value.Resolve().String())
		}

		buf.WriteString(colorCyan)
		buf.WriteString("{" + strings.Join(parts, " ") + "}")

	default:
		buf.WriteString(colorCyan)
		buf.WriteString(v.String())
	}

	buf.WriteString(colorReset)
}
