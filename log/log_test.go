package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	original := Logger
	defer SetLogger(original)

	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))

	Trace.Printf("stroke %d", 3)
	Warning.Println("service down")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "stroke 3", entries[0].Message)
		assert.Equal(t, zap.DebugLevel, entries[0].Level)
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
	}
}

func TestSetLoggerNil(t *testing.T) {
	original := Logger
	defer SetLogger(original)

	SetLogger(nil)
	assert.NotNil(t, Logger)
	assert.NotPanics(t, func() { Error.Println("muted") })
}
