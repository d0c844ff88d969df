package models

// Figure is a Plotly figure: traces plus layout, serialized as-is to the page.
type Figure struct {
	Data   []Choropleth `json:"data"`
	Layout Layout       `json:"layout"`
}

// ColorStop is one [position, color] pair of a continuous color scale.
type ColorStop [2]any

type Choropleth struct {
	Type         string   `json:"type"`
	Locations    []string `json:"locations"`
	LocationMode string   `json:"locationmode"`
	// nil entries are sent as null and drawn as no data
	Z             []*float64  `json:"z"`
	Text          []string    `json:"text"`
	HoverText     []string    `json:"hovertext"`
	HoverTemplate string      `json:"hovertemplate"`
	ColorScale    []ColorStop `json:"colorscale"`
	ColorBar      ColorBar    `json:"colorbar"`
}

type ColorBar struct {
	Title Title `json:"title"`
}

type Title struct {
	Text string `json:"text"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Domain struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
}

// Geo leaves the projection unset so Plotly draws its default world map.
type Geo struct {
	Domain Domain `json:"domain"`
}

type Layout struct {
	Title    Title  `json:"title"`
	AutoSize bool   `json:"autosize"`
	Margin   Margin `json:"margin"`
	Height   int    `json:"height"`
	Geo      Geo    `json:"geo"`
}
