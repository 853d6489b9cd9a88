package logging

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"javaxify/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_DebugModeWritesFile(t *testing.T) {
	ws := t.TempDir()
	t.Cleanup(CloseAll)

	err := Initialize(ws, config.LoggingConfig{DebugMode: true, Level: "debug", Format: "json"})
	require.NoError(t, err)

	ExtractDebug("matched %d bindings", 3)
	CloseAll()

	logs, err := filepath.Glob(filepath.Join(ws, ".javaxify", "logs", "*_javaxify.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "matched 3 bindings")
	assert.Contains(t, string(data), `"logger":"extract"`)
}

func TestInitialize_ProductionModeIsSilent(t *testing.T) {
	ws := t.TempDir()
	t.Cleanup(CloseAll)

	require.NoError(t, Initialize(ws, config.LoggingConfig{DebugMode: false}))
	Boot("should not be written")

	_, err := os.Stat(filepath.Join(ws, ".javaxify"))
	assert.True(t, os.IsNotExist(err), "no log directory in production mode")
	assert.False(t, IsDebugMode())
}

func TestInitialize_RequiresWorkspace(t *testing.T) {
	assert.Error(t, Initialize("", config.LoggingConfig{DebugMode: true}))
}

func TestCategoryFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	UseCore(core, config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"locate": false},
	})
	t.Cleanup(CloseAll)

	LocateDebug("hidden")
	ParseDebug("visible %s", "entry")

	all := logs.All()
	require.Len(t, all, 1)
	assert.Equal(t, "visible entry", all[0].Message)
	assert.Equal(t, "parse", all[0].LoggerName)
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	UseCore(core, config.LoggingConfig{DebugMode: true})
	t.Cleanup(CloseAll)

	Get(CategoryWorkspace).WithFields("run_id", "abc").Info("converted %s", "Demo.javax")

	entries := logs.FilterField(zapcore.Field{Key: "run_id", Type: zapcore.StringType, String: "abc"}).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "converted Demo.javax", entries[0].Message)
}

func TestGet_Concurrent(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	UseCore(core, config.LoggingConfig{DebugMode: true})
	t.Cleanup(CloseAll)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Get(CategoryGenerate).Debug("tick")
		}()
	}
	wg.Wait()

	assert.Same(t, Get(CategoryGenerate), Get(CategoryGenerate))
}
