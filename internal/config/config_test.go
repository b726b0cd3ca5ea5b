package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/generator"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sodo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "backtrack", cfg.Server.Solver)
	assert.Equal(t, "fs", cfg.Server.Storage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  solver: dlx
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "dlx", cfg.Server.Solver)
	// untouched fields keep their defaults
	assert.Equal(t, "fs", cfg.Server.Storage)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not a mapping"))
	assert.Error(t, err)
}

func TestTuningDefaults(t *testing.T) {
	tun, err := Default().Tuning()
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultTuning(), tun)
}

func TestTuningTierOverride(t *testing.T) {
	path := writeConfig(t, `
generator:
  attempts: 5
  tiers:
    hard:
      min_givens: 26
      max_guesses: 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	tun, err := cfg.Tuning()
	require.NoError(t, err)

	assert.Equal(t, 5, tun.Attempts)
	hard := tun.Tiers[domain.Hard]
	assert.Equal(t, 26, hard.MinGivens)
	assert.Equal(t, 20, hard.MaxGuesses)
	// fields the file omits stay at their defaults
	def := generator.DefaultTuning().Tiers[domain.Hard]
	assert.Equal(t, def.NodeBudget, hard.NodeBudget)
	assert.Equal(t, def.MinGuesses, hard.MinGuesses)
	// other tiers untouched
	assert.Equal(t, generator.DefaultTuning().Tiers[domain.Easy], tun.Tiers[domain.Easy])
}

func TestTuningRejectsUnknownTier(t *testing.T) {
	cfg := Default()
	cfg.Generator.Tiers = map[string]TierConfig{"nightmare": {MinGivens: 20}}
	_, err := cfg.Tuning()
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}
