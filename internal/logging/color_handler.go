package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

const (
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// ColorHandler пишет JSON и подкрашивает уровни, если вывод идёт в терминал.
type ColorHandler struct {
	slog.Handler
	out       io.Writer
	isColored bool
}

func NewColorHandler(out io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	isColored := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isColored = true
	}
	return &ColorHandler{
		Handler:   slog.NewJSONHandler(out, opts),
		out:       out,
		isColored: isColored,
	}
}

func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	color := ""
	if h.isColored {
		switch {
		case r.Level >= slog.LevelError:
			color = colorRed
		case r.Level >= slog.LevelWarn:
			color = colorYellow
		case r.Level < slog.LevelInfo:
			color = colorBlue
		}
	}
	if color != "" {
		fmt.Fprint(h.out, color)
	}
	err := h.Handler.Handle(ctx, r)
	if color != "" {
		fmt.Fprint(h.out, colorReset)
	}
	return err
}

// WithAttrs and WithGroup keep the color wrapper around derived handlers.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{Handler: h.Handler.WithAttrs(attrs), out: h.out, isColored: h.isColored}
}

func (h *ColorHandler) WithGroup(name string) slog.Handler {
	return &ColorHandler{Handler: h.Handler.WithGroup(name), out: h.out, isColored: h.isColored}
}
