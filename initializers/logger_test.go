package initializers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoggerWarnsWhenLogFileCannotBeCreated(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	var stdout bytes.Buffer
	logger := newLogger(Config{LogFile: filepath.Join(blocker, "app.log")}, &stdout)
	logger.Info("still here")

	out := stdout.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, "Log file unavailable")
	assert.Contains(t, out, "still here")
}

func TestLoggerWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	var stdout bytes.Buffer
	logger := newLogger(Config{LogFile: path, LogLevel: "debug"}, &stdout)
	logger.Debug("to both")

	assert.NotContains(t, stdout.String(), "Log file unavailable")
	assert.Contains(t, stdout.String(), "to both")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var out bytes.Buffer
	logger := newGormLogger(&out)
	query := func() (string, int64) { return "SELECT * FROM cart_items", 0 }

	logger.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, out.String())

	logger.Trace(context.Background(), time.Now(), query, errors.New("disk I/O error"))
	assert.Contains(t, out.String(), "disk I/O error")
}
