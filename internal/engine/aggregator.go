package engine

import (
	"math"
	"sort"

	"ricemap/internal/models"
)

// Summarize aggregates a numeric column over the distinct countries and
// keeps the top n countries by value. Null cells count as missing.
func (t *Table) Summarize(column string, n int) (models.Summary, error) {
	values, valid, err := t.Numeric(column)
	if err != nil {
		return models.Summary{}, err
	}

	s := models.Summary{
		Column: column,
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		Top:    make([]models.TopItem, 0),
	}

	// 1. Single pass over the regions
	for _, row := range t.regions {
		if !valid[row] {
			s.Missing++
			continue
		}
		v := values[row]
		s.Count++
		s.Total += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Top = append(s.Top, models.TopItem{Country: t.Country(row), Value: v})
	}

	if s.Count == 0 {
		s.Min, s.Max = 0, 0
		return s, nil
	}
	s.Mean = s.Total / float64(s.Count)

	// 2. Sort (ties keep file order)
	sort.SliceStable(s.Top, func(i, j int) bool { return s.Top[i].Value > s.Top[j].Value })
	if n >= 0 && len(s.Top) > n {
		s.Top = s.Top[:n]
	}
	return s, nil
}
