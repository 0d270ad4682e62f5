package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/hilabel/internal/highlight"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/richtext"
)

// isolate keeps Load away from real user config files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, used, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_ExplicitFileOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `strategy: pixel
lines: 2
colors:
  highlight: "#000000"
regions:
  - text: foo
    at: 1
    tag: 9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, used, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "pixel", cfg.Strategy)
	assert.Equal(t, 2, cfg.Lines)
	assert.Equal(t, "#000000", cfg.Colors.Highlight)
	assert.Equal(t, Defaults().Colors.Normal, cfg.Colors.Normal, "unset keys keep defaults")
	require.Equal(t, []RegionConfig{{Text: "foo", At: 1, Tag: 9}}, cfg.Regions)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	isolate(t)
	_, _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_LocalFileIsFound(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(".hilabel", 0o750))
	require.NoError(t, os.WriteFile(LocalPath, []byte("break_mode: tail\n"), 0o600))

	cfg, used, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, LocalPath, used)
	assert.Equal(t, "tail", cfg.BreakMode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HILABEL_STRATEGY", "pixel")
	t.Setenv("HILABEL_LOG_DEBUG", "true")

	cfg, _, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "pixel", cfg.Strategy)
	assert.True(t, cfg.Log.Debug)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"strategy", func(c *Config) { c.Strategy = "magic" }, "strategy"},
		{"break mode", func(c *Config) { c.BreakMode = "hyphen" }, "break_mode"},
		{"align", func(c *Config) { c.Align = "justify" }, "align"},
		{"lines", func(c *Config) { c.Lines = -1 }, "lines"},
		{"size", func(c *Config) { c.Width = -3 }, "size"},
		{"region text", func(c *Config) { c.Regions = []RegionConfig{{}} }, "text is required"},
		{"region at", func(c *Config) { c.Regions = []RegionConfig{{Text: "a", At: -1}} }, "at must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Defaults()
	cfg.Strategy = "pixel"
	cfg.BreakMode = "middle"
	cfg.Align = "center"
	cfg.Lines = 1

	assert.Equal(t, hittest.StrategyPixel, cfg.HitStrategy())
	assert.Equal(t, layout.Params{Width: 48, Height: 6, MaxLines: 1, Mode: layout.TruncateMiddle, Align: layout.AlignCenter}, cfg.Params())
	assert.Equal(t, richtext.Color("#ffffff"), cfg.Style().HighlightColor)
}

type stubHost struct {
	text richtext.Text
}

func (h *stubHost) Text() richtext.Text {
	return h.text
}

func (h *stubHost) SetText(t richtext.Text) {
	h.text = t
}

func (h *stubHost) Params() layout.Params {
	return layout.Params{Width: 80, Height: 1}
}

func (h *stubHost) OnContentChanged(func(richtext.Text)) func() {
	return func() {}
}

func (h *stubHost) ClaimPointer(highlight.StreamID) {}

func (h *stubHost) ReleasePointer(highlight.StreamID) {}

func TestApply_RegistersOccurrences(t *testing.T) {
	host := &stubHost{text: richtext.Plain("a b a b")}
	cfg := Config{Regions: []RegionConfig{
		{Text: "b", At: 1, Tag: 2, Color: "3"},
		{Text: "a", Tag: 1},
		{Text: "zzz"},
	}}
	h := highlight.Attach(host)
	cfg.Apply(h)

	regions := h.Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, richtext.NewRange(6, 1), regions[0].Range)
	assert.Equal(t, 2, regions[0].Tag)
	assert.Equal(t, richtext.Color("3"), host.text.AttrsAt(6).Foreground)
	assert.Equal(t, richtext.NewRange(0, 1), regions[1].Range)
}

func TestResolveText(t *testing.T) {
	cfg := Config{Text: "inline"}
	got, err := cfg.ResolveText()
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	path := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file\n\n"), 0o600))
	cfg.TextFile = path
	got, err = cfg.ResolveText()
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	cfg.TextFile = filepath.Join(t.TempDir(), "missing")
	_, err = cfg.ResolveText()
	require.Error(t, err)
}

func TestWriteDefaultConfig_LoadsBack(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# hilabel configuration")
	assert.Contains(t, string(data), "strategy: layout")

	cfg, _, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestSaveDisplay_PreservesOtherConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# keep me
strategy: layout # hit testing
width: 30
colors:
  highlight: "#ff0000"
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	require.NoError(t, SaveDisplay(path, Display{Strategy: "pixel", BreakMode: "clip", Lines: 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# keep me")
	assert.Contains(t, content, "strategy: pixel")
	assert.Contains(t, content, "# hit testing")
	assert.Contains(t, content, "width: 30")
	assert.Contains(t, content, "#ff0000")
	assert.Contains(t, content, "break_mode: clip")
	assert.Contains(t, content, "lines: 3")
}

func TestSaveDisplay_CreatesFileThatLoads(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	d := Display{Strategy: "pixel", BreakMode: "head", Lines: 1}
	require.NoError(t, SaveDisplay(path, d))

	cfg, _, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, d, cfg.Display())
}

func TestSaveDisplay_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	require.Error(t, SaveDisplay(path, Display{}))
}
