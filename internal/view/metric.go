package view

import (
	"errors"
	"fmt"

	"ricemap/internal/engine"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Metric is one of the eight selectable dataset columns.
type Metric int

const (
	Production Metric = iota
	ProductionRank
	PerPerson
	PerPersonRank
	Acreage
	AcreageRank
	Yield
	YieldRank

	numMetrics
)

// DefaultMetric is selected when the page loads.
const DefaultMetric = Production

var metricColumns = [numMetrics]string{
	Production:     engine.ColProduction,
	ProductionRank: engine.ColProductionRank,
	PerPerson:      engine.ColPerPerson,
	PerPersonRank:  engine.ColPerPersonRank,
	Acreage:        engine.ColAcreage,
	AcreageRank:    engine.ColAcreageRank,
	Yield:          engine.ColYield,
	YieldRank:      engine.ColYieldRank,
}

// Metrics returns all metrics in dropdown order.
func Metrics() []Metric {
	ms := make([]Metric, 0, numMetrics)
	for m := Metric(0); m < numMetrics; m++ {
		ms = append(ms, m)
	}
	return ms
}

func (m Metric) Valid() bool { return m >= 0 && m < numMetrics }

// Column is the dataset column the metric reads.
func (m Metric) Column() string {
	if !m.Valid() {
		return ""
	}
	return metricColumns[m]
}

// Label is the human-readable name; the dataset headers are already readable.
func (m Metric) Label() string { return m.Column() }

func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return m.Label()
}

// IsRank reports whether the metric is a rank column.
func (m Metric) IsRank() bool {
	switch m {
	case ProductionRank, PerPersonRank, AcreageRank, YieldRank:
		return true
	}
	return false
}

// Values reads the metric column from t.
func (m Metric) Values(t *engine.Table) (values []float64, valid []bool, err error) {
	if !m.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownMetric, m)
	}
	return t.Numeric(m.Column())
}

// ParseMetric maps a column name to its metric. An empty string selects
// DefaultMetric.
func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return DefaultMetric, nil
	}
	for m, col := range metricColumns {
		if col == s {
			return Metric(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}
