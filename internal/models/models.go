package models

// Summary describes one metric column over the distinct countries.
type Summary struct {
	Column  string    `json:"column"`
	Label   string    `json:"label"`
	Count   int       `json:"count"`
	Missing int       `json:"missing"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Mean    float64   `json:"mean"`
	Total   float64   `json:"total"`
	Top     []TopItem `json:"top"`
}

type TopItem struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Dropdown struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
	Value   string   `json:"value"`
}

type Graph struct {
	ID     string `json:"id"`
	Height string `json:"height"`
}

// Page is the static description of the dashboard page.
type Page struct {
	Title    string   `json:"title"`
	Dropdown Dropdown `json:"dropdown"`
	Graph    Graph    `json:"graph"`
}
