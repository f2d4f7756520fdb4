package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// jsonHandler writes one JSON object per record. Records logged with a
// context carrying a run id or target get run_id/target keys unless the
// logger already has them bound.
type jsonHandler struct {
	inner   slog.Handler
	bound   map[string]bool
	grouped bool
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	}
	return &jsonHandler{inner: slog.NewJSONHandler(w, &opts), bound: map[string]bool{}}
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(formatJSONTimestamp(attr.Value.Time()))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
	}
	return attr
}

func (h *jsonHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *jsonHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.grouped {
		return h.inner.Handle(ctx, record)
	}
	var extra []slog.Attr
	for _, field := range ContextFields(ctx) {
		if !h.bound[field.Key] && !recordHasKey(record, field.Key) {
			extra = append(extra, field)
		}
	}
	if len(extra) > 0 {
		record = record.Clone()
		record.AddAttrs(extra...)
	}
	return h.inner.Handle(ctx, record)
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	next.inner = h.inner.WithAttrs(attrs)
	if !h.grouped {
		for _, attr := range attrs {
			next.bound[attr.Key] = true
		}
	}
	return next
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.inner = h.inner.WithGroup(name)
	next.grouped = true
	return next
}

func (h *jsonHandler) clone() *jsonHandler {
	bound := make(map[string]bool, len(h.bound))
	for key := range h.bound {
		bound[key] = true
	}
	return &jsonHandler{inner: h.inner, bound: bound, grouped: h.grouped}
}

func recordHasKey(record slog.Record, key string) bool {
	found := false
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
