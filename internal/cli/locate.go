package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/hilabel/internal/config"
	"github.com/interpretive-systems/hilabel/internal/hittest"
	"github.com/interpretive-systems/hilabel/internal/layout"
	"github.com/interpretive-systems/hilabel/internal/richtext"
	"github.com/interpretive-systems/hilabel/internal/surface"
	"github.com/interpretive-systems/hilabel/internal/tui/label"
)

type locateFlags struct {
	text     string
	width    int
	height   int
	lines    int
	mode     string
	align    string
	strategy string
	regions  []string
	point    string
	show     bool
	dump     string
	scale    int
}

func newLocateCmd(opts *options) *cobra.Command {
	f := &locateFlags{}
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Hit-test a point against a label's regions",
		Long: `Lay a label out, register regions and report which one a point hits.

Unset flags fall back to the configuration. Each --region is a substring,
optionally followed by @N to pick its Nth occurrence (0-based); regions are
tagged 1, 2, ... in flag order. The point is in label cells, X,Y from the
top-left corner.

Examples:
  hilabel locate --text "open the docs or the faq" --width 30 \
    --region docs --region faq --point 10,0

  # Dump the pixel strategy's region map, 8x8 pixels per cell
  hilabel locate --strategy pixel --point 0,0 --dump regions.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, opts.cfg, f)
		},
	}
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "label text")
	cmd.Flags().IntVarP(&f.width, "width", "w", 0, "label width in cells")
	cmd.Flags().IntVar(&f.height, "height", 0, "label height in cells")
	cmd.Flags().IntVarP(&f.lines, "lines", "n", 0, "maximum lines, 0 for no limit")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "break mode: word, char, clip, head, tail or middle")
	cmd.Flags().StringVar(&f.align, "align", "", "line alignment: left, center or right")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "hit-test strategy: layout or pixel")
	cmd.Flags().StringArrayVarP(&f.regions, "region", "r", nil, "region as SUBSTR[@N] (repeatable)")
	cmd.Flags().StringVarP(&f.point, "point", "p", "", "point to test as X,Y")
	cmd.Flags().BoolVar(&f.show, "show", false, "print the laid out label first")
	cmd.Flags().StringVar(&f.dump, "dump", "", "write the pixel region map to a .png, .bmp or .tiff file")
	cmd.Flags().IntVar(&f.scale, "scale", 8, "pixels per cell in --dump")
	_ = cmd.MarkFlagRequired("point")
	return cmd
}

func runLocate(cmd *cobra.Command, cfg config.Config, f *locateFlags) error {
	flags := cmd.Flags()
	if flags.Changed("text") {
		cfg.Text, cfg.TextFile = f.text, ""
	}
	if flags.Changed("width") {
		cfg.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Height = f.height
	}
	if flags.Changed("lines") {
		cfg.Lines = f.lines
	}
	if flags.Changed("mode") {
		cfg.BreakMode = f.mode
	}
	if flags.Changed("align") {
		cfg.Align = f.align
	}
	if flags.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if len(f.regions) > 0 {
		cfg.Regions = make([]config.RegionConfig, 0, len(f.regions))
		for i, arg := range f.regions {
			text, at := parseRegion(arg)
			cfg.Regions = append(cfg.Regions, config.RegionConfig{Text: text, At: at, Tag: i + 1})
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pt, err := parsePoint(f.point)
	if err != nil {
		return err
	}
	text, err := cfg.ResolveText()
	if err != nil {
		return err
	}

	pool := surface.NewPool()
	l := label.New(richtext.Plain(text), cfg.Params(),
		label.WithStrategy(cfg.HitStrategy()),
		label.WithPool(pool),
		label.WithFadeSteps(0),
	)
	defer l.Close()
	h := l.Highlight()
	h.SetColor(cfg.Style().Color)
	cfg.Apply(h)

	out := cmd.OutOrStdout()
	if f.show {
		printLabel(out, l)
	}

	if rg, ok := h.Locate(pt); ok {
		sub, _ := l.Text().Slice(rg.Range)
		_, _ = fmt.Fprintf(out, "hit %q range=%s tag=%d\n", sub.String(), rg.Range, rg.Tag)
	} else {
		_, _ = fmt.Fprintln(out, "no hit")
	}

	if f.dump == "" {
		return nil
	}
	return dumpRegions(f.dump, f.scale, pool, hittest.Scene{
		Text:    l.Text().String(),
		Params:  l.Params(),
		Regions: h.Regions(),
	})
}

func printLabel(w io.Writer, l *label.Model) {
	rows := layout.Compute(l.Text().String(), l.Params()).Render(l.Text())
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "|%s|\n", ansi.Strip(row))
	}
}

func dumpRegions(path string, scale int, pool *surface.Pool, scene hittest.Scene) error {
	enc, err := surface.EncoderFor(path)
	if err != nil {
		return err
	}
	tester := hittest.NewPixelTester(hittest.Options{Cache: layout.NewCache(), Pool: pool, Holder: "locate-dump"})
	defer tester.Close()
	surf := tester.Render(scene)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	if err := surf.Dump(file, enc, scale); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing dump file: %w", err)
	}
	return nil
}

// parseRegion splits "text@N" into its substring and occurrence index. A
// suffix that is not a number is part of the substring.
func parseRegion(arg string) (string, int) {
	i := strings.LastIndex(arg, "@")
	if i <= 0 {
		return arg, 0
	}
	n, err := strconv.Atoi(arg[i+1:])
	if err != nil || n < 0 {
		return arg, 0
	}
	return arg[:i], n
}

func parsePoint(s string) (layout.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return layout.Point{}, fmt.Errorf("point %q: want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return layout.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return layout.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return layout.Point{X: x, Y: y}, nil
}
