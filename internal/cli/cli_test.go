package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dongne/internal/domain"
	"dongne/internal/eventbus"
	"dongne/internal/town"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTownsShowEmpty(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")

	out, err := run(t, "--config", cfgPath, "towns", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(no neighborhoods set)")
}

func TestTownsSetAndShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")

	out, err := run(t, "--config", cfgPath, "towns", "set", "역삼동", "samseong-dong")
	require.NoError(t, err)
	assert.Contains(t, out, "1. 역삼동 (강남구) [yeoksam-dong]")
	assert.Contains(t, out, "2. 삼성동")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "samseong-dong")

	out, err = run(t, "--config", cfgPath, "towns", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "1. 역삼동")
	assert.Contains(t, out, "2. 삼성동")
}

func TestTownsSetRejectsDuplicate(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")

	_, err := run(t, "--config", cfgPath, "towns", "set", "yeoksam-dong", "역삼동")
	require.Error(t, err)
	assert.ErrorIs(t, err, town.ErrDuplicateSelection)

	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr), "nothing saved")
}

func TestTownsSetUnknown(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")

	_, err := run(t, "--config", cfgPath, "towns", "set", "atlantis")
	assert.Error(t, err)
}

func TestTownsClear(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")
	_, err := run(t, "--config", cfgPath, "towns", "set", "yeoksam-dong", "samseong-dong")
	require.NoError(t, err)

	_, err = run(t, "--config", cfgPath, "towns", "clear", "first")
	assert.ErrorIs(t, err, town.ErrInvalidState)

	out, err := run(t, "--config", cfgPath, "towns", "clear", "second")
	require.NoError(t, err)
	assert.NotContains(t, out, "삼성동")

	_, err = run(t, "--config", cfgPath, "towns", "clear", "first")
	assert.ErrorIs(t, err, town.ErrInvalidState, "last town stays")
}

func TestTownsClearPromotePolicy(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version = 1\n[ui]\nclear_policy = \"promote\"\n"), 0o600))

	_, err := run(t, "--config", cfgPath, "towns", "set", "yeoksam-dong", "samseong-dong")
	require.NoError(t, err)

	out, err := run(t, "--config", cfgPath, "towns", "clear", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1. 삼성동")
	assert.NotContains(t, out, "역삼동")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "promote")
}

func TestCatalogSearch(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")

	out, err := run(t, "--config", cfgPath, "catalog", "search", "망원")
	require.NoError(t, err)
	assert.Contains(t, out, "mangwon-dong")
	assert.Contains(t, out, "마포구")

	out, err = run(t, "--config", cfgPath, "catalog", "search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "(no matches)")
}

func TestBadClearPolicyFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dongne.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[ui]\nclear_policy = \"sideways\"\n"), 0o600))

	_, err := run(t, "--config", cfgPath, "towns", "show")
	assert.Error(t, err)
}

func TestLogEventsTracesTownChanges(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	bus := eventbus.New()
	logEvents(bus, zerolog.New(&buf))

	bus.Publish(eventbus.TownSelectionChangedEvent{Active: domain.SlotFirst})
	bus.Close()

	assert.Contains(t, buf.String(), `"event":"TownSelectionChanged"`)
}
