package logger

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"time"
)

type customKey int

const (
	LogDataKey customKey = iota
)

// ContextHandler дописывает в запись данные запроса, сохранённые в контексте.
type ContextHandler struct {
	handler slog.Handler
}

type LogData struct {
	RequestID string
	Entity    string
	Details   map[string]any
}

func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts != nil {
		return slog.New(NewContextHandler(slog.NewJSONHandler(w, opts)))
	}
	handler := slog.Handler(slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.TimeValue(a.Value.Time().Truncate(time.Millisecond))
			}
			return a
		},
		Level: slog.LevelInfo,
	}))
	return slog.New(NewContextHandler(handler))
}

// ParseLevel maps "debug", "info", "warn" and "error"; anything else is info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{handler: h}
}

func (h *ContextHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.handler.Enabled(ctx, lvl)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ld, ok := ctx.Value(LogDataKey).(LogData); ok {
		if ld.RequestID != "" {
			rec.Add("request_id", ld.RequestID)
		}
		if ld.Entity != "" {
			rec.Add("entity", ld.Entity)
		}
		if ld.Details != nil {
			rec.Add("details", ld.Details)
		}
	}
	return h.handler.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(h.handler.WithGroup(name))
}

func fromContext(ctx context.Context) LogData {
	ld, _ := ctx.Value(LogDataKey).(LogData)
	return ld
}

func WithRequestID(ctx context.Context, id string) context.Context {
	ld := fromContext(ctx)
	ld.RequestID = id
	return context.WithValue(ctx, LogDataKey, ld)
}

func RequestID(ctx context.Context) string {
	return fromContext(ctx).RequestID
}

func WithEntity(ctx context.Context, entity string) context.Context {
	ld := fromContext(ctx)
	ld.Entity = entity
	return context.WithValue(ctx, LogDataKey, ld)
}

// WithDetails copies the map so that contexts derived earlier keep their own details.
func WithDetails(ctx context.Context, key string, detail any) context.Context {
	ld := fromContext(ctx)
	details := make(map[string]any, len(ld.Details)+1)
	maps.Copy(details, ld.Details)
	details[key] = detail
	ld.Details = details
	return context.WithValue(ctx, LogDataKey, ld)
}
