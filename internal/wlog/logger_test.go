package wlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfofWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.Infof("hello %s", "world")
	assert.Contains(t, buf.String(), "hello world")
}

func TestSetLevelFallsBackToInfoOnUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel("not-a-level")
	l.Infof("still logs")
	assert.Contains(t, buf.String(), "still logs")
}

func TestDebugfSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.Debugf("should not appear")
	assert.Empty(t, buf.String())
}

func TestTracefSuppressedBelowTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.Tracef("should not appear")
	assert.Empty(t, buf.String())
}

func TestInfofDecoratesWithCallerPosition(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.Infof("decorated")
	assert.Contains(t, buf.String(), "position=")
	assert.Contains(t, buf.String(), "logger_test.go")
}
