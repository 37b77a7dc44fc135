package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return filepath.Join(dir, "dubfilter")
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultLanguages, cfg.Languages)
	assert.True(t, cfg.Legacy())
	assert.Equal(t, "cite", cfg.TitleSelector)
	assert.Equal(t, "li", cfg.ContainerSelector)
	assert.Equal(t, 1500*time.Millisecond, time.Duration(cfg.Delay))
}

func TestLoadMergedFlagsOverrideProfile(t *testing.T) {
	root := isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "Default.yaml"), path)

	cfg, used, err := LoadMerged(Options{
		Languages:     []string{"English"},
		NoLegacy:      true,
		TitleSelector: "h2.title",
		Delay:         time.Second,
		InPlace:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, []string{"English"}, cfg.Languages)
	assert.False(t, cfg.Legacy())
	assert.Equal(t, "h2.title", cfg.TitleSelector)
	assert.Equal(t, "li", cfg.ContainerSelector)
	assert.Equal(t, time.Second, time.Duration(cfg.Delay))
	assert.True(t, cfg.InPlace)
}

func TestLoadYAMLProfile(t *testing.T) {
	isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	path, err := ActiveConfigPath()
	require.NoError(t, err)

	raw := "languages:\n  - Français\n  - Deutsch\ndelay: 250ms\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, _, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Français", "Deutsch"}, cfg.Languages)
	assert.True(t, cfg.Legacy(), "missing legacy_marker means on")
	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.Delay))
	assert.Equal(t, "cite", cfg.TitleSelector)
}

func TestLoadYAMLLanguagesKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"missing", "delay: 250ms\n", DefaultLanguages},
		{"null", "languages:\ndelay: 250ms\n", DefaultLanguages},
		{"empty", "languages: []\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, err := InitDefaultConfig()
			require.NoError(t, err)
			path, err := ActiveConfigPath()
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0644))

			cfg, _, err := LoadMerged(Options{})
			require.NoError(t, err)

			require.NotNil(t, cfg.Languages)
			assert.Equal(t, tt.want, cfg.Languages)
		})
	}
}

func TestLoadYAMLBadDelay(t *testing.T) {
	isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)
	path, err := ActiveConfigPath()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("delay: soon\n"), 0644))

	_, _, err = LoadMerged(Options{})
	assert.ErrorContains(t, err, "invalid delay")
}

func TestIgnoreConfig(t *testing.T) {
	isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, "(ignored config)", used)
	assert.True(t, cfg.Debug)
}

func TestSaveRoundTripKeepsDelayReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.yaml")

	require.NoError(t, SaveYAML(DefaultConfig(), path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "delay: 1.5s")
	assert.Contains(t, string(b), "legacy_marker: true")
}

func TestProfiles(t *testing.T) {
	isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = CreateEmptyConfig("Weekend")
	require.NoError(t, err)
	_, err = CreateEmptyConfig("Weekend")
	assert.Error(t, err)

	require.NoError(t, SwitchConfig("Weekend"))
	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Weekend", label)

	require.NoError(t, RenameConfig("Weekend", "Sunday"))
	label, _ = CurrentLabel()
	assert.Equal(t, "Sunday", label)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.True(t, list[1].Active)

	_, err = ConfigPathByLabel("Sunday")
	require.NoError(t, err)
	_, err = ConfigPathByLabel("Nope")
	assert.Error(t, err)

	switched, err := RemoveConfig("Sunday")
	require.NoError(t, err)
	assert.True(t, switched)
	label, _ = CurrentLabel()
	assert.Equal(t, "Default", label)

	_, err = RemoveConfig("Default")
	assert.Error(t, err)
	assert.Error(t, SwitchConfig("Sunday"))
}

func TestProfileLabels(t *testing.T) {
	root := isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)

	for _, label := range []string{"", "  ", "../escape", `a\b`, ".."} {
		_, err := CreateEmptyConfig(label)
		assert.Error(t, err, "label %q", label)
		assert.Error(t, RenameConfig(DefaultLabel, label), "label %q", label)
	}

	_, err = os.Stat(filepath.Join(root, "escape.yaml"))
	assert.True(t, os.IsNotExist(err))
	_, err = ConfigPathByLabel(DefaultLabel)
	assert.NoError(t, err, "failed renames leave the profile alone")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	DefaultConfig().Print(&buf)

	assert.Contains(t, buf.String(), " -languages: English, Deutsch")
	assert.Contains(t, buf.String(), " -delay: 1.5s")
	assert.NotContains(t, buf.String(), "in_place")
}

func TestCountLanguages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages: [English, Deutsch]\n"), 0644))

	n, err := CountLanguages(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0644))
	n, err = CountLanguages(path)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultLanguages), n)

	_, err = CountLanguages(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
