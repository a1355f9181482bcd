package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// sink is the destination shared by a Handler and every handler derived
// from it.
type sink struct {
	base atomic.Pointer[slog.Handler]
}

// derivation is one WithAttrs or WithGroup call, replayed onto whichever
// base handler is current.
type derivation struct {
	group string
	attrs []slog.Attr
}

// resolved caches a derived handler for one base handler.
type resolved struct {
	base    slog.Handler
	handler slog.Handler
}

// Handler forwards records to a base handler that can be replaced while
// loggers are in use. Loggers built with With or WithGroup before a Swap
// follow the new base along with their attributes and groups.
type Handler struct {
	sink  *sink
	chain []derivation
	cache atomic.Pointer[resolved]
}

// NewHandler returns a Handler writing to initial.
func NewHandler(initial slog.Handler) *Handler {
	s := &sink{}
	s.base.Store(&initial)
	return &Handler{sink: s}
}

// Swap replaces the base handler for this handler and all handlers
// derived from the same root.
func (h *Handler) Swap(next slog.Handler) {
	h.sink.base.Store(&next)
}

func (h *Handler) current() slog.Handler {
	base := *h.sink.base.Load()
	if len(h.chain) == 0 {
		return base
	}
	if c := h.cache.Load(); c != nil && c.base == base {
		return c.handler
	}

	derived := base
	for _, d := range h.chain {
		if d.group != "" {
			derived = derived.WithGroup(d.group)
		} else {
			derived = derived.WithAttrs(d.attrs)
		}
	}
	h.cache.Store(&resolved{base: base, handler: derived})
	return derived
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.current().Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	return h.current().Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.derive(derivation{attrs: attrs})
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(derivation{group: name})
}

func (h *Handler) derive(d derivation) *Handler {
	chain := make([]derivation, len(h.chain), len(h.chain)+1)
	copy(chain, h.chain)
	return &Handler{sink: h.sink, chain: append(chain, d)}
}
