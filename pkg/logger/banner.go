package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"
)

const bannerWidth = 120

// Banner logs text at info level between two header lines made of symbol,
// repeated to fill the banner width in characters. An empty symbol defaults
// to "=", and a symbol wider than the banner is printed once.
// Banners are white unless attrs contain InColor.
func Banner(ctx context.Context, l *slog.Logger, text, symbol string, attrs ...slog.Attr) {
	if symbol == "" {
		symbol = "="
	}
	header := strings.Repeat(symbol, max(bannerWidth/utf8.RuneCountInString(symbol), 1))

	attrs = append([]slog.Attr{InColor(White)}, attrs...)
	logAt(ctx, l, slog.LevelInfo, header, attrs)
	logAt(ctx, l, slog.LevelInfo, text, attrs)
	logAt(ctx, l, slog.LevelInfo, header, attrs)
}

// Noise logs msg at LevelNoise.
func Noise(ctx context.Context, l *slog.Logger, msg string, attrs ...slog.Attr) {
	logAt(ctx, l, LevelNoise, msg, attrs)
}

// logAt must be called directly from an exported helper so the recorded
// caller is the helper's caller.
func logAt(ctx context.Context, l *slog.Logger, level slog.Level, msg string, attrs []slog.Attr) {
	if l == nil {
		l = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip [Callers, logAt, helper]
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
