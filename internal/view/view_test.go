package view

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemap/internal/engine"
)

const riceCSV = `Country,Rice Production (Tons),Rank of Rice Production,Rice Production Per Person (Kg),Rank of Rice Production Per Person,Rice Acreage (Hectare),Rank of Rice Acreage,Rice Yield (Kg / Hectare),Rank of Rice Yield
China,212.8M,1,152.1,9,30.2M,2,"7,040.6",13
India,172.6M,2,128.8,17,43.7M,1,"3,949.1",46
Bangladesh,54.9M,3,337.7,2,11.7M,3,"4,688.1",30
India,1K,99,1,99,1K,99,"1,000",99
Belize,19.4K,93,49.8,60,,98,"3,000.7",61
`

func loadTable(t *testing.T, content string) *engine.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rice.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := engine.Load(path)
	require.NoError(t, err)
	t.Cleanup(table.Release)
	return table
}

func TestMetrics(t *testing.T) {
	ms := Metrics()
	require.Len(t, ms, 8)

	seen := map[string]bool{}
	for _, m := range ms {
		assert.True(t, m.Valid())
		assert.NotEmpty(t, m.Column())
		assert.False(t, seen[m.Column()], "duplicate column %q", m.Column())
		seen[m.Column()] = true

		parsed, err := ParseMetric(m.Column())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMetric, m)

	_, err = ParseMetric("Country")
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	_, err = ParseMetric("rice production (tons)")
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestMetric_Invalid(t *testing.T) {
	m := Metric(42)
	assert.False(t, m.Valid())
	assert.Empty(t, m.Column())
	assert.Equal(t, "Metric(42)", m.String())
}

func TestNewPage(t *testing.T) {
	page := NewPage()

	assert.Equal(t, "Global Rice Production by Country", page.Title)
	assert.Equal(t, "feature-dropdown", page.Dropdown.ID)
	assert.Equal(t, "Rice Production (Tons)", page.Dropdown.Value)
	assert.Equal(t, "choropleth-map", page.Graph.ID)
	assert.Equal(t, "80vh", page.Graph.Height)

	require.Len(t, page.Dropdown.Options, 8)
	assert.Equal(t, "Rice Production (Tons)", page.Dropdown.Options[0].Value)
	assert.Equal(t, "Rank of Rice Yield", page.Dropdown.Options[7].Value)
	for _, opt := range page.Dropdown.Options {
		assert.Equal(t, opt.Value, opt.Label)
	}
}

func TestRender_EveryMetric(t *testing.T) {
	table := loadTable(t, riceCSV)

	for _, m := range Metrics() {
		t.Run(m.Column(), func(t *testing.T) {
			fig, err := Render(table, m)
			require.NoError(t, err)
			require.Len(t, fig.Data, 1)

			trace := fig.Data[0]
			// one region per distinct country
			assert.Equal(t, []string{"China", "India", "Bangladesh", "Belize"}, trace.Locations)
			assert.Len(t, trace.Z, 4)
			assert.Len(t, trace.HoverText, 4)
			assert.Equal(t, "country names", trace.LocationMode)
			assert.Equal(t, trace.Locations, trace.HoverText)

			assert.Contains(t, fig.Layout.Title.Text, m.Label())
			assert.Equal(t, "Global "+m.Label()+" by Country", fig.Layout.Title.Text)
			assert.Equal(t, 700, fig.Layout.Height)
			assert.Equal(t, 0, fig.Layout.Margin.L)
			assert.Equal(t, 0, fig.Layout.Margin.R)
			assert.Equal(t, 50, fig.Layout.Margin.T)
			assert.True(t, fig.Layout.AutoSize)
			assert.Equal(t, [2]float64{0, 1}, fig.Layout.Geo.Domain.X)
		})
	}
}

func TestRender_Values(t *testing.T) {
	table := loadTable(t, riceCSV)

	fig, err := Render(table, Production)
	require.NoError(t, err)

	trace := fig.Data[0]
	require.NotNil(t, trace.Z[1])
	// first India row wins
	assert.InDelta(t, 172.6e6, *trace.Z[1], 1e-3)
	assert.Equal(t, "172,600,000", trace.Text[1])

	fig, err = Render(table, ProductionRank)
	require.NoError(t, err)
	assert.Equal(t, "93", fig.Data[0].Text[3])
}

func TestRender_MissingValueIsNoData(t *testing.T) {
	table := loadTable(t, riceCSV)

	fig, err := Render(table, Acreage)
	require.NoError(t, err)

	trace := fig.Data[0]
	assert.Nil(t, trace.Z[3], "Belize has no acreage")
	assert.Equal(t, "no data", trace.Text[3])
	assert.NotNil(t, trace.Z[0])
}

func TestRender_ColorScale(t *testing.T) {
	table := loadTable(t, riceCSV)

	fig, err := Render(table, Yield)
	require.NoError(t, err)

	scale := fig.Data[0].ColorScale
	require.Len(t, scale, 10)
	assert.Equal(t, 0.0, scale[0][0])
	assert.Equal(t, "#0d0887", scale[0][1])
	assert.Equal(t, 1.0, scale[9][0])
	assert.Equal(t, "#f0f921", scale[9][1])
}

func TestRender_DefaultProjection(t *testing.T) {
	fig, err := Render(loadTable(t, riceCSV), Production)
	require.NoError(t, err)

	geo, err := json.Marshal(fig.Layout.Geo)
	require.NoError(t, err)
	assert.JSONEq(t, `{"domain":{"x":[0,1],"y":[0,1]}}`, string(geo))
}

func TestRender_MissingColumnFails(t *testing.T) {
	content := "Country,Rice Production (Tons),Rice Acreage (Hectare),Rice Yield (Kg / Hectare)\nJapan,10.5M,1.5M,\"6,700\"\n"
	table := loadTable(t, content)

	_, err := Render(table, Production)
	require.NoError(t, err)

	fig, err := Render(table, YieldRank)
	assert.True(t, errors.Is(err, engine.ErrMissingColumn))
	assert.Empty(t, fig.Data)
}

func TestRender_TextColumnFails(t *testing.T) {
	content := riceCSV + `Japan,10.5M,11,"1,152.1",30,1.5M,15,"6,700",20` + "\n"
	table := loadTable(t, content)

	_, err := Render(table, Production)
	require.NoError(t, err)

	fig, err := Render(table, PerPerson)
	assert.True(t, errors.Is(err, engine.ErrNotNumeric), "got %v", err)
	assert.Empty(t, fig.Data)
}

func TestRender_EmptyTable(t *testing.T) {
	table := loadTable(t, `Country,Rice Production (Tons),Rice Acreage (Hectare),Rice Yield (Kg / Hectare)
`)

	fig, err := Render(table, Production)
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	assert.Empty(t, fig.Data[0].Locations)
	assert.Empty(t, fig.Data[0].Z)
}

func TestRender_InvalidMetric(t *testing.T) {
	table := loadTable(t, riceCSV)

	_, err := Render(table, Metric(-1))
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}
