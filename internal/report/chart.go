package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"ricemap/internal/engine"
	"ricemap/internal/view"
)

var ErrNoData = errors.New("no values to chart")

// WriteTopChart draws a PNG bar chart of the n countries with the largest
// values of m. Countries without a value are skipped.
func WriteTopChart(w io.Writer, t *engine.Table, m view.Metric, n int) error {
	summary, err := t.Summarize(m.Column(), n)
	if err != nil {
		return fmt.Errorf("chart %s: %w", m, err)
	}
	if len(summary.Top) == 0 {
		return fmt.Errorf("chart %s: %w", m, ErrNoData)
	}

	values := make(plotter.Values, len(summary.Top))
	labels := make([]string, len(summary.Top))
	for i, item := range summary.Top {
		values[i] = item.Value
		labels[i] = item.Country
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d: %s", len(values), view.Title(m))
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = m.Label()

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 156, G: 23, B: 158, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.Add(plotter.NewGrid())

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
