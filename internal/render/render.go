package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"traceplot/internal/trace"
)

// Default page size, A4 landscape.
const (
	DefaultWidthIn  = 11.69
	DefaultHeightIn = 8.27
)

// Options controls the rendered page.
type Options struct {
	// Columns is the number of plots per row. Values below 1 mean 1.
	Columns  int
	WidthIn  float64
	HeightIn float64
	// Title is drawn above the first plot when set.
	Title string
}

// Render draws one plot per active channel of layout from table and writes
// the page to out.
func Render(table Table, layout trace.ChannelLayout, out string, opts Options) error {
	if len(layout.Active) == 0 {
		return errors.New("no channels to render")
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	if format == "" {
		return fmt.Errorf("output %s has no extension to select a format", out)
	}

	width, height := opts.WidthIn, opts.HeightIn
	if width <= 0 {
		width = DefaultWidthIn
	}
	if height <= 0 {
		height = DefaultHeightIn
	}
	canvas, err := draw.NewFormattedCanvas(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}

	plots, err := channelPlots(table, layout, opts)
	if err != nil {
		return err
	}
	cols := opts.Columns
	if cols < 1 {
		cols = 1
	}
	if cols > len(plots) {
		cols = len(plots)
	}
	rows := (len(plots) + cols - 1) / cols
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	dc := draw.New(canvas)
	for i, p := range plots {
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if _, err := canvas.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	return nil
}

// RenderFile reads the table at tablePath and renders it to out.
func RenderFile(tablePath string, layout trace.ChannelLayout, out string, opts Options) error {
	table, err := ReadTableFile(tablePath)
	if err != nil {
		return err
	}
	return Render(table, layout, out, opts)
}

func channelPlots(table Table, layout trace.ChannelLayout, opts Options) ([]*plot.Plot, error) {
	plots := make([]*plot.Plot, 0, len(layout.Active))
	for i, ch := range layout.Active {
		p := plot.New()
		p.BackgroundColor = colornames.White
		p.Y.Label.Text = ch.Name
		p.X.Label.Text = "time [s]"
		if i == 0 && opts.Title != "" {
			p.Title.Text = opts.Title
		}
		p.Add(plotter.NewGrid())

		xs, ys := table.Series(layout.XColumn, ch.Column)
		if len(xs) > 0 {
			pts := make(plotter.XYs, len(xs))
			for j := range xs {
				pts[j].X = xs[j]
				pts[j].Y = ys[j]
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, fmt.Errorf("channel %s: %w", ch.Name, err)
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
		}
		plots = append(plots, p)
	}
	return plots, nil
}
