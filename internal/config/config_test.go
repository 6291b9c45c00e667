package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dongne/internal/domain"
	"dongne/internal/eventbus"
	"dongne/internal/town"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "nope", FileName))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.SetTowns(domain.TownSetting{
		Primary:   domain.Neighborhood{ID: "yeoksam-dong"},
		Secondary: domain.Neighborhood{ID: "samseong-dong"},
	})
	cfg.UI.ClearPolicy = "promote"
	require.NoError(t, svc.Save(cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "version = 1")
	assert.Contains(t, string(raw), "yeoksam-dong")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	policy, err := loaded.ClearPolicy()
	require.NoError(t, err)
	assert.Equal(t, town.ClearPromote, policy)
}

func TestLoadFillsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[towns]\nprimary = \"seocho-dong\"\n"), 0o644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "seocho-dong", cfg.Towns.Primary)
	assert.Equal(t, 2, cfg.UI.AlertSeconds)
	assert.Equal(t, "disallow", cfg.UI.ClearPolicy)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"bad policy":     "[ui]\nclear_policy = \"swap\"\n",
		"duplicate town": "[towns]\nprimary = \"a\"\nsecondary = \"a\"\n",
		"orphan second":  "[towns]\nsecondary = \"a\"\n",
		"not toml":       "this is = = not toml",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := NewConfigService(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestSavePublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan string, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
			saved <- ev.Path
		}
	})

	path := filepath.Join(t.TempDir(), FileName)
	svc := NewConfigServiceWithBus(path, bus)
	require.NoError(t, svc.Save(DefaultConfig()))

	select {
	case got := <-saved:
		assert.Equal(t, path, got)
	case <-time.After(time.Second):
		t.Fatal("ConfigSaved was not published")
	}
}
