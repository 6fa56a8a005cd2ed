package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// ColorHandler prints one coloured line per record, prefixed with the time.
type ColorHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

func NewColorHandler(out io.Writer, level slog.Leveler) *ColorHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ColorHandler{mu: &sync.Mutex{}, out: out, level: level}
}

func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(Gray.Render(r.Time.Format(time.TimeOnly)))
	sb.WriteString(" ")

	switch {
	case r.Level >= slog.LevelError:
		sb.WriteString(ErrorBadge.Render("✗ ERROR") + " " + Fail.Render(r.Message))
	case r.Level >= slog.LevelWarn:
		sb.WriteString(WarningBadge.Render("WARNING") + " " + Warning.Render(r.Message))
	case r.Level >= slog.LevelInfo:
		sb.WriteString(Default.Render(r.Message))
	default:
		sb.WriteString(Muted.Render(r.Message))
	}

	writeAttr := func(a slog.Attr) {
		sb.WriteString(" " + Muted.Render(a.Key) + "=" + fmt.Sprintf("%v", a.Value.Any()))
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintln(h.out, sb.String())
	return err
}

func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{
		mu:    h.mu,
		out:   h.out,
		level: h.level,
		attrs: append(slices.Clone(h.attrs), attrs...),
	}
}

func (h *ColorHandler) WithGroup(_ string) slog.Handler {
	return h // groups not implemented
}
