package logger

import (
	"strings"
	"sync"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestLogger(t *testing.T) {
	t.Setenv("CINECACHE_LOG_FOLDER", t.TempDir())
	InitLogger(logging.DEBUG)
}

func TestGetLogsReturnsAtMostCount(t *testing.T) {
	initTestLogger(t)

	for i := 0; i < 5; i++ {
		Info("count check entry")
	}
	require.Len(t, GetLogs(3, "info"), 3)
}

func TestGetLogsLevelFilter(t *testing.T) {
	initTestLogger(t)

	Debug("debug only line")
	Error("error line")

	for _, entry := range GetLogs(maxLogBufferSize, "error") {
		assert.NotContains(t, entry, "debug only line")
	}
}

func TestLogBufferConcurrentAccess(t *testing.T) {
	initTestLogger(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				Info("concurrent line")
				GetLogs(10, "info")
			}
		}()
	}
	wg.Wait()

	found := false
	for _, entry := range GetLogs(maxLogBufferSize, "info") {
		if strings.Contains(entry, "concurrent line") {
			found = true
			break
		}
	}
	assert.True(t, found)
}
