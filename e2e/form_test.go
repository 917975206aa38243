//go:build e2e && unix

package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartupRendersFields(t *testing.T) {
	t.Parallel()
	d := NewFormDriver(t)
	defer d.Cleanup()

	require.NoError(t, d.Start("--config", d.ConfigPath("form.toml")))
	require.True(t, d.Ready(), "Should receive ready signal")
	require.True(t, d.SeePlain("Heroes"), "Should show heroes field")
	require.True(t, d.SeePlain("All villains"), "Empty villains value means all")
	require.True(t, d.SeePlain("No planets?"), "Planets use the label expression")

	d.Send(KeyQuit)
	require.NoError(t, d.Wait(2*time.Second))

	raw, err := os.ReadFile(d.ConfigPath("form.toml"))
	require.NoError(t, err, "Config file should be created")
	require.Contains(t, string(raw), "version = 1")
}

func TestToggleIsPersisted(t *testing.T) {
	t.Parallel()
	d := NewFormDriver(t)
	defer d.Cleanup()

	path := d.ConfigPath("form.yaml")
	require.NoError(t, d.Start("--config", path))
	require.True(t, d.Ready(), "Should receive ready signal")

	// open heroes, move past the all row to Luke and toggle
	d.Send(KeyEnter, KeyDown, KeySpace)
	require.True(t, d.SeePlain("heroes: Luke Skywalker"), "Status should show the new label")
	require.True(t, d.SeePlain("Saved "+path), "Change should be saved")

	d.Send(KeyEsc, KeyModel)
	require.True(t, d.SeePlain(`heroes: ["luke"]`), "Form model should show the value")

	d.Send(KeyQuit)
	require.NoError(t, d.Wait(2*time.Second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "- luke")
}

func TestNoneSelectedSentinel(t *testing.T) {
	t.Parallel()
	d := NewFormDriver(t)
	defer d.Cleanup()

	require.NoError(t, d.Start("--config", d.ConfigPath("form.toml")))
	require.True(t, d.Ready(), "Should receive ready signal")

	// villains: deselect everything from the vacuous all state
	d.Send(KeyTab, KeyEnter, KeyCtrlA, KeyEsc, KeyModel)
	require.True(t, d.SeePlain(`villains: ["-1"]`), "Deselecting all stores the sentinel")

	d.Send(KeyCtrlC)
	require.NoError(t, d.Wait(2*time.Second))
}
