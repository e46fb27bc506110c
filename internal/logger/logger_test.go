package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("test message %s", "arg") }, "[DEBUG] test message arg\n"},
		{"info", func() { Info("info message %d", 42) }, "[INFO] info message 42\n"},
		{"warn", func() { Warn("warning message") }, "[WARN] warning message\n"},
		{"section", func() { Section("Import") }, "\n=== Import ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
		t.Run(tt.name+" silent", func(t *testing.T) {
			buf := capture(t, false)
			tt.log()
			assert.Empty(t, buf.String())
		})
	}
}

func TestError_AlwaysPrints(t *testing.T) {
	buf := capture(t, false)

	Error("copy %s failed", "a.png")

	assert.Equal(t, "[ERROR] copy a.png failed\n", buf.String())
}
