package domain

import "sort"

// ScenarioCatalogue merges every milestone's alternative values into one
// sorted, de-duplicated set per field name.
func ScenarioCatalogue(milestones []*Milestone) map[string][]float64 {
	seen := make(map[string]map[float64]bool)
	for _, m := range milestones {
		for field, values := range m.ScenarioParameterValues {
			if seen[field] == nil {
				seen[field] = make(map[float64]bool)
			}
			for _, v := range values {
				seen[field][v] = true
			}
		}
	}

	catalogue := make(map[string][]float64, len(seen))
	for field, set := range seen {
		values := make([]float64, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Float64s(values)
		catalogue[field] = values
	}
	return catalogue
}
