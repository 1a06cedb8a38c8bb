//go:build e2e && unix

package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	_, err := tf.CreateWorkspace()
	require.NoError(t, err)

	out, err := tf.Command("--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "--zoom")
	require.Contains(t, output, "config")
}

func TestConfigInitWritesDefaults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	_, err := tf.CreateWorkspace()
	require.NoError(t, err)

	out, err := tf.Command("config", "init").CombinedOutput()
	require.NoError(t, err, string(out))
	require.Equal(t, tf.ConfigPath(), strings.TrimSpace(string(out)))

	data, err := os.ReadFile(tf.ConfigPath())
	require.NoError(t, err)
	require.Contains(t, string(data), "[board]")
	require.Contains(t, string(data), "view = 'desktop'")

	// a second init refuses to overwrite
	_, err = tf.Command("config", "init").CombinedOutput()
	require.Error(t, err)
}

func TestConfigFileSelectsView(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	_, err := tf.CreateWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.WriteConfig("[board]\nview = \"tablet\"\n"))

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("tablet"), "The configured view is shown in the header")
}

func TestInvalidConfigFailsFast(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	_, err := tf.CreateWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.WriteConfig("[board]\nzoom = 0\n"))

	out, err := tf.Command().CombinedOutput()
	require.Error(t, err)
	require.Contains(t, string(out), "board.zoom must be positive")
}
