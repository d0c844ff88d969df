package view

import (
	"fmt"

	"github.com/valyala/fasttemplate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"ricemap/internal/engine"
	"ricemap/internal/models"
)

const (
	titleTemplate = "Global {label} by Country"
	figureHeight  = 700
	marginTop     = 50
)

// plasma is the sequential Plasma scale, evenly spaced.
var plasma = []string{
	"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
	"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
}

func colorScale() []models.ColorStop {
	stops := make([]models.ColorStop, len(plasma))
	for i, c := range plasma {
		stops[i] = models.ColorStop{float64(i) / float64(len(plasma)-1), c}
	}
	return stops
}

// Title is the figure title for m.
func Title(m Metric) string {
	return fasttemplate.ExecuteString(titleTemplate, "{", "}", map[string]any{"label": m.Label()})
}

// Render builds the choropleth figure for metric m. It has no side effects
// and fails without a partial figure when the column cannot be read.
func Render(t *engine.Table, m Metric) (models.Figure, error) {
	values, valid, err := m.Values(t)
	if err != nil {
		return models.Figure{}, fmt.Errorf("render %s: %w", m, err)
	}

	regions := t.Regions()
	trace := models.Choropleth{
		Type:          "choropleth",
		Locations:     make([]string, len(regions)),
		LocationMode:  "country names",
		Z:             make([]*float64, len(regions)),
		Text:          make([]string, len(regions)),
		HoverText:     make([]string, len(regions)),
		HoverTemplate: "<b>%{hovertext}</b><br>" + m.Label() + "=%{text}<extra></extra>",
		ColorScale:    colorScale(),
		ColorBar:      models.ColorBar{Title: models.Title{Text: m.Label()}},
	}

	digits := 2
	if m.IsRank() {
		digits = 0
	}

	p := message.NewPrinter(language.English)
	for i, row := range regions {
		country := t.Country(row)
		trace.Locations[i] = country
		trace.HoverText[i] = country

		if !valid[row] {
			trace.Text[i] = "no data"
			continue
		}
		v := values[row]
		trace.Z[i] = &v
		trace.Text[i] = p.Sprint(number.Decimal(v, number.MaxFractionDigits(digits)))
	}

	return models.Figure{
		Data: []models.Choropleth{trace},
		Layout: models.Layout{
			Title:    models.Title{Text: Title(m)},
			AutoSize: true,
			Margin:   models.Margin{L: 0, R: 0, T: marginTop, B: 0},
			Height:   figureHeight,
			Geo: models.Geo{
				Domain: models.Domain{X: [2]float64{0, 1}, Y: [2]float64{0, 1}},
			},
		},
	}, nil
}
