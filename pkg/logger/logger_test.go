package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("development", &bytes.Buffer{}) })

	Info("seller scored", "seller", "acme", "probability", 0.25)
	Debug("dropped at info level")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "seller scored", line["msg"])
	assert.Equal(t, "acme", line["seller"])
}

func TestBareErrorIsKeyed(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("development", &buf)

	Error("load failed", errors.New("boom"))

	assert.Contains(t, buf.String(), "error=boom")
}
