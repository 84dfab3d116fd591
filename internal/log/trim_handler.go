package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxAttrLen is the default maximum length in bytes for a string
// attribute value. Longer values are truncated. The budget is generous enough
// for URLs, selectors, and error chains while keeping fetched documents out
// of the log stream.
const DefaultMaxAttrLen = 512

// TrimHandler wraps an slog.Handler to truncate oversized attribute values.
// It intercepts log records and cuts string attributes down to a fixed byte
// budget before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay free to log raw values without worrying about size
type TrimHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler

	// maxLen is the maximum string attribute length in bytes.
	maxLen int
}

// NewTrimHandler creates a new TrimHandler wrapping the given handler.
// If handler is nil, the returned TrimHandler wraps slog.Default().Handler().
// If maxLen is not positive, DefaultMaxAttrLen is used.
func NewTrimHandler(handler slog.Handler, maxLen int) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxAttrLen
	}
	return &TrimHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying handler.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// trimAttr trims a single attribute, recursively handling groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	strVal := a.Value.String()
	if len(strVal) <= h.maxLen {
		return a
	}

	return slog.String(a.Key, truncate(strVal, h.maxLen))
}

// truncate cuts s to at most maxLen bytes on a rune boundary and appends a
// note with the original size.
func truncate(s string, maxLen int) string {
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (trimmed, %d bytes total)", s[:cut], len(s))
}

// NewLogger creates a new slog.Logger with attribute trimming.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Info
//
// The Info default keeps per-page progress visible during long runs, which is
// what the tool shows while iterating seasons.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	trimHandler := NewTrimHandler(textHandler, DefaultMaxAttrLen)

	return slog.New(trimHandler)
}

// NewJSONLogger creates a new slog.Logger with attribute trimming that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	trimHandler := NewTrimHandler(jsonHandler, DefaultMaxAttrLen)

	return slog.New(trimHandler)
}
