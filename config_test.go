package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRc(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), ".grainviewrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigDefaults(t *testing.T) {
	config, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)

	assert.Equal(t, defaultBaseUrl, config.BaseUrl)
	assert.Equal(t, 10.0, config.GrainSize)
	assert.Equal(t, 3, config.Overscan)
	assert.Equal(t, time.Second, config.PollInterval)
	assert.Equal(t, 50*time.Millisecond, config.FrameInterval)
	assert.Equal(t, 10*time.Second, config.HttpTimeout)
	assert.Equal(t, "info", config.LogLevel)
	assert.True(t, config.Confirmations)
	assert.Equal(t, "", config.SnapshotDirectory)
	assert.True(t, filepath.IsAbs(config.LogFile))
}

func TestConfigRcFile(t *testing.T) {
	rc := writeRc(t, `# canvas
base_url = https://canvas.example.com
grain_size = 5
overscan = 1
poll_interval = 2s
confirmations = false
`)

	config, err := loadConfig(newViper(), rc)
	require.NoError(t, err)
	assert.Equal(t, "https://canvas.example.com", config.BaseUrl)
	assert.Equal(t, 5.0, config.GrainSize)
	assert.Equal(t, 1, config.Overscan)
	assert.Equal(t, 2*time.Second, config.PollInterval)
	assert.False(t, config.Confirmations)
}

func TestConfigPrecedence(t *testing.T) {
	rc := writeRc(t, "overscan = 1\ngrain_size = 5\n")
	t.Setenv("GRAINVIEW_OVERSCAN", "4")
	t.Setenv("GRAINVIEW_GRAIN_SIZE", "8")

	v := newViper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(flags)
	require.NoError(t, flags.Parse([]string{"--overscan=7"}))
	require.NoError(t, bindConfigFlags(v, flags))

	config, err := loadConfig(v, rc)
	require.NoError(t, err)
	// flag beats env beats rc file
	assert.Equal(t, 7, config.Overscan)
	assert.Equal(t, 8.0, config.GrainSize)
}

func TestConfigValidate(t *testing.T) {
	config := testConfig()
	require.NoError(t, config.Validate())

	config.GrainSize = 0
	config.Overscan = -1
	config.PollInterval = 0
	config.BaseUrl = "canvas"
	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grain_size")
	assert.Contains(t, err.Error(), "overscan")
	assert.Contains(t, err.Error(), "poll_interval")
	assert.Contains(t, err.Error(), "base_url")

	rc := writeRc(t, "grain_size = -2\n")
	_, err = loadConfig(newViper(), rc)
	assert.Error(t, err)
}

func TestConfigSnapshotPath(t *testing.T) {
	config := testConfig()
	assert.Equal(t, "a.png", config.SnapshotPath("a.png"))

	dir := filepath.Join(t.TempDir(), "snapshots")
	config.SnapshotDirectory = dir
	assert.Equal(t, filepath.Join(dir, "a.png"), config.SnapshotPath("a.png"))
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", expandPath(""))
	assert.Equal(t, filepath.Join(home, "logs/grainview.log"), expandPath("~/logs/grainview.log"))
	assert.Equal(t, "/var/log/grainview.log", expandPath("/var/log/grainview.log"))
	assert.True(t, filepath.IsAbs(expandPath("relative.log")))
}
