// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the process-wide structured logger. Packages grab a
// contextual logger once at init time via WithContext; the backing handler is
// installed later by the command entry point, so loggers created before Init
// still pick it up.
package log

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"
)

var current atomic.Pointer[slog.Handler]

func init() {
	// slog.DiscardHandler requires go1.24; an io.Discard-backed handler is
	// the equivalent on older toolchains.
	discard := slog.Handler(slog.NewTextHandler(io.Discard, nil))
	current.Store(&discard)
}

// Init installs the backing handler. Loggers obtained before or after the
// call all route to it.
func Init(h slog.Handler) {
	current.Store(&h)
}

// Root returns the root logger.
func Root() *slog.Logger {
	return slog.New(&swapHandler{})
}

// WithContext returns a logger carrying the given key/value context.
func WithContext(keyValues ...any) *slog.Logger {
	return Root().With(keyValues...)
}

// swapHandler delegates to the currently installed handler, applying its own
// accumulated attributes on each record.
type swapHandler struct {
	attrs []slog.Attr
}

var _ slog.Handler = (*swapHandler)(nil)

func (h *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*current.Load()).Enabled(ctx, level)
}

func (h *swapHandler) Handle(ctx context.Context, record slog.Record) error {
	inner := *current.Load()
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	return inner.Handle(ctx, record)
}

func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &swapHandler{attrs: append(slices.Clip(h.attrs), attrs...)}
}

func (h *swapHandler) WithGroup(name string) slog.Handler {
	// groups are not used by this codebase
	return h
}
