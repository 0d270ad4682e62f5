package cli

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/hilabel/internal/config"
	"github.com/interpretive-systems/hilabel/internal/layout"
)

// run executes the root command with args in an empty working directory and
// home, returning stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("HILABEL_DEBUG", "")
	t.Chdir(dir)
	return dir
}

var sample = []string{
	"locate", "--text", "open the docs or the faq", "--width", "30", "--height", "2",
	"--region", "docs", "--region", "faq",
}

func TestLocate_Hit(t *testing.T) {
	isolate(t)
	out, err := run(t, append(sample, "--point", "10,0")...)
	require.NoError(t, err)
	assert.Equal(t, "hit \"docs\" range={9, 4} tag=1\n", out)
}

func TestLocate_NoHit(t *testing.T) {
	isolate(t)
	out, err := run(t, append(sample, "--point", "0,0")...)
	require.NoError(t, err)
	assert.Equal(t, "no hit\n", out)

	out, err = run(t, append(sample, "--point", "10,5")...)
	require.NoError(t, err)
	assert.Equal(t, "no hit\n", out)
}

func TestLocate_Occurrence(t *testing.T) {
	isolate(t)
	out, err := run(t, "locate", "--text", "a b a b", "--width", "10", "--height", "1",
		"--region", "b@1", "--point", "6,0")
	require.NoError(t, err)
	assert.Equal(t, "hit \"b\" range={6, 1} tag=1\n", out)
}

func TestLocate_PixelDump(t *testing.T) {
	dir := isolate(t)
	dump := filepath.Join(dir, "regions.png")

	out, err := run(t, append(sample,
		"--strategy", "pixel", "--point", "22,0", "--dump", dump, "--scale", "2")...)
	require.NoError(t, err)
	assert.Equal(t, "hit \"faq\" range={21, 3} tag=2\n", out)

	f, err := os.Open(dump)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Width)
	assert.Equal(t, 4, img.Height)
}

func TestLocate_UnsupportedDumpFormat(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, append(sample, "--point", "0,0", "--dump", filepath.Join(dir, "x.gif"))...)
	require.ErrorContains(t, err, "unsupported image format")
}

func TestLocate_Show(t *testing.T) {
	isolate(t)
	out, err := run(t, "locate", "--text", "abc", "--width", "5", "--height", "1",
		"--region", "b", "--point", "1,0", "--show")
	require.NoError(t, err)
	assert.Equal(t, "|abc  |\nhit \"b\" range={1, 1} tag=1\n", out)
}

func TestLocate_UsesConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`text: "see the faq"
width: 20
height: 1
regions:
  - text: faq
    tag: 7
`), 0o600))

	out, err := run(t, "--config", path, "locate", "--point", "8,0")
	require.NoError(t, err)
	assert.Equal(t, "hit \"faq\" range={8, 3} tag=7\n", out)
}

func TestLocate_RequiresPoint(t *testing.T) {
	isolate(t)
	_, err := run(t, "locate", "--text", "x")
	require.Error(t, err)
}

func TestLocate_RejectsBadFlags(t *testing.T) {
	isolate(t)
	_, err := run(t, append(sample, "--point", "1;2")...)
	require.ErrorContains(t, err, "want X,Y")

	_, err = run(t, append(sample, "--point", "0,0", "--mode", "sideways")...)
	require.Error(t, err)

	_, err = run(t, append(sample, "--point", "0,0", "--strategy", "sonar")...)
	require.ErrorContains(t, err, "sonar")
}

func TestRoot_InvalidConfigFails(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: sonar\n"), 0o600))

	_, err := run(t, "--config", path, "locate", "--point", "0,0")
	require.ErrorContains(t, err, "invalid config")
}

func TestDemo_RejectsUnknownStrategy(t *testing.T) {
	isolate(t)
	_, err := run(t, "demo", "--strategy", "sonar")
	require.ErrorContains(t, err, "sonar")
}

func TestInitConfig(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "init-config")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+config.LocalPath+"\n", out)
	require.FileExists(t, filepath.Join(dir, config.LocalPath))

	_, err = run(t, "init-config")
	require.ErrorContains(t, err, "already exists")

	_, err = run(t, "init-config", "--force")
	require.NoError(t, err)

	out, err = run(t, "init-config", "--user")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, ".config", "hilabel", "config.yaml"))
	assert.Contains(t, out, "hilabel")

	// The written file is picked up by the next run.
	out, err = run(t, "locate", "--point", "0,0")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestInitConfig_IgnoresBrokenConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: sonar\n"), 0o600))

	_, err := run(t, "--config", path, "init-config", "--force")
	require.NoError(t, err)

	_, err = run(t, "--config", path, "locate", "--point", "0,0")
	require.NoError(t, err)
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		text string
		at   int
	}{
		{"docs", "docs", 0},
		{"docs@2", "docs", 2},
		{"a@b", "a@b", 0},
		{"@3", "@3", 0},
		{"x@-1", "x@-1", 0},
		{"me@home@1", "me@home", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			text, at := parseRegion(tt.in)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.at, at)
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("3, 4")
	require.NoError(t, err)
	assert.Equal(t, layout.Point{X: 3, Y: 4}, p)

	for _, bad := range []string{"", "3", "a,1", "1,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}
