package diag

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeHandlers(t *testing.T) {
	var (
		bufA, bufB, bufC strings.Builder
	)
	log := slog.New(MergeHandlers(
		slog.NewTextHandler(&bufA, &slog.HandlerOptions{}),
		slog.NewTextHandler(&bufB, &slog.HandlerOptions{}),
		nil,
		slog.NewTextHandler(&bufC, &slog.HandlerOptions{}),
	))
	log.Info("A message", "test", "test")
	a, b, c := bufA.String(), bufB.String(), bufC.String()
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
}

func TestMergeHandlers_Levels(t *testing.T) {
	var debug, warn strings.Builder
	log := slog.New(MergeHandlers(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))
	log.Info("only debug")
	assert.Contains(t, debug.String(), "only debug")
	assert.Empty(t, warn.String())
}

func TestMergeHandlers_WithAttrs(t *testing.T) {
	var bufA, bufB strings.Builder
	base := slog.New(MergeHandlers(
		slog.NewTextHandler(&bufA, nil),
		slog.NewTextHandler(&bufB, nil),
	))
	base.With("attr", "derived").Info("first")
	base.Info("second")

	assert.Contains(t, bufA.String(), "attr=derived")
	assert.Contains(t, bufB.String(), "attr=derived")
	assert.Equal(t, 1, strings.Count(bufA.String(), "attr=derived"), "Deriving a logger should not change the original")
}

func TestForward(t *testing.T) {
	t.Cleanup(func() {
		SetLogger(nil)
	})
	var buf strings.Builder
	Forward(slog.NewTextHandler(&buf, nil))
	Report(errors.New("forwarded"), "broadcaster", "test")
	assert.Contains(t, buf.String(), reportMessage)
	assert.Contains(t, buf.String(), "forwarded")
	assert.Contains(t, buf.String(), "broadcaster=test")
}
