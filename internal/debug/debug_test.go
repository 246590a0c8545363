package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalQuiet := Quiet
	originalOutput := output
	return func() {
		EnableDebug = originalDebug
		Quiet = originalQuiet
		output = originalOutput
	}
}

func TestSetQuiet(t *testing.T) {
	defer saveAndRestoreState()()

	SetQuiet(true)
	assert.True(t, Quiet)

	SetQuiet(false)
	assert.False(t, Quiet)
}

func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "false"
	Quiet = false
	assert.False(t, IsDebugEnabled())

	EnableDebug = "true"
	Quiet = false
	assert.True(t, IsDebugEnabled())

	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())
}

func TestQuietSuppressesEvenWhenEnabled(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	Quiet = true
	assert.False(t, IsDebugEnabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	EnableDebug = "true"
	Quiet = false
	Log("TEST", "Hello %s", "World")

	output := buf.String()
	assert.Contains(t, output, "[DEBUG:TEST]")
	assert.Contains(t, output, "Hello World")
}

func TestLog_Quiet(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	EnableDebug = "true"
	Quiet = true
	Log("TEST", "should not appear")

	assert.Empty(t, buf.String())
}

func TestLogHelpers(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	Quiet = false

	tests := []struct {
		name    string
		logFunc func(string, ...interface{})
		prefix  string
	}{
		{"LogIndex", LogIndex, "[DEBUG:INDEX]"},
		{"LogResolve", LogResolve, "[DEBUG:RESOLVE]"},
		{"LogCallGraph", LogCallGraph, "[DEBUG:CALLGRAPH]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)
			tt.logFunc("%s happened", "test")

			out := buf.String()
			assert.Contains(t, out, tt.prefix)
			assert.Contains(t, out, "test happened")
		})
	}
}

func TestConcurrentLogging(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetOutput(&buf)
	EnableDebug = "true"
	Quiet = false

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			LogResolve("call site %d fell through to heuristic match", id)
			LogIndex("indexed file %d", id)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.True(t, true)
}

func TestNoOutputWithNilWriter(t *testing.T) {
	defer saveAndRestoreState()()

	SetOutput(nil)
	EnableDebug = "true"
	Quiet = false

	Log("TEST", "test %s", "message")
	LogIndex("test %s", "message")
	LogResolve("test %s", "message")
	LogCallGraph("test %s", "message")
}
