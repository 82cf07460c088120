package log

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(&filteringHandler{underlying: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})})
}

func TestFilteringHandlerKeepsEnabledSections(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	logger.With("section", "inference.unify").Debug("kept")
	logger.With("section", "backend").Debug("dropped")
	logger.Debug("also kept", "section", "coeffects.dataflow")
	logger.Debug("no section")

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "also kept")
	assert.NotContains(t, out, "dropped")
	assert.NotContains(t, out, "no section")
}

func TestFilteringHandlerAlwaysKeepsWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	newTestLogger(buf).With("section", "backend").Warn("careful")
	assert.Contains(t, buf.String(), "careful")
}

func TestSetOutputReachesDerivedLoggers(t *testing.T) {
	derived := DefaultLogger.With("section", "problem")
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	derived.Warn("redirected")
	assert.Contains(t, buf.String(), "section=problem")
	assert.Contains(t, buf.String(), "redirected")
}
