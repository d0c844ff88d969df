package view

import "ricemap/internal/models"

const (
	PageTitle     = "Global Rice Production by Country"
	DropdownID    = "feature-dropdown"
	DropdownLabel = "Select Feature:"
	GraphID       = "choropleth-map"
	GraphHeight   = "80vh"
)

// NewPage describes the static dashboard page.
func NewPage() models.Page {
	options := make([]models.Option, 0, numMetrics)
	for _, m := range Metrics() {
		options = append(options, models.Option{Label: m.Label(), Value: m.Column()})
	}

	return models.Page{
		Title: PageTitle,
		Dropdown: models.Dropdown{
			ID:      DropdownID,
			Label:   DropdownLabel,
			Options: options,
			Value:   DefaultMetric.Column(),
		},
		Graph: models.Graph{ID: GraphID, Height: GraphHeight},
	}
}
