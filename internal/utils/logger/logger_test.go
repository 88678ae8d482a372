package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut := color.Output
	prevNoColor := color.NoColor
	color.Output = &buf
	color.NoColor = true
	t.Cleanup(func() {
		color.Output = prevOut
		color.NoColor = prevNoColor
	})
	return &buf
}

func TestErrorAppendsCauseCleanly(t *testing.T) {
	buf := captureOutput(t)
	log := New("test")

	err := log.Error("Failed to recompute fundraiser totals", errors.New("db down"))

	require.EqualError(t, err, "Failed to recompute fundraiser totals: db down")
	assert.Contains(t, buf.String(), "Failed to recompute fundraiser totals: db down")
	assert.NotContains(t, buf.String(), "%!", "messages without a trailing verb must not leak format noise")
}

func TestErrorFormatsArgsBeforeCause(t *testing.T) {
	buf := captureOutput(t)
	log := New("test")

	err := log.Error("Failed to close fundraiser %s", errors.New("timeout"), "fr-1")

	require.EqualError(t, err, "Failed to close fundraiser fr-1: timeout")
	assert.Contains(t, buf.String(), "Failed to close fundraiser fr-1: timeout")
}

func TestErrorWithoutCause(t *testing.T) {
	captureOutput(t)
	log := New("test")

	err := log.Error("Nothing to report", nil)

	require.EqualError(t, err, "Nothing to report")
}
