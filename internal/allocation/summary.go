package allocation

import "math"

// Summary rolls a utilization pass up into dashboard counters.
type Summary struct {
	TotalResources     int     `json:"total_resources"`
	Overallocated      int     `json:"overallocated"`
	WithConflicts      int     `json:"with_conflicts"`
	ConflictCount      int     `json:"conflict_count"`
	CrossProject       int     `json:"cross_project"`
	DateErrors         int     `json:"date_errors"`
	AverageUtilization float64 `json:"average_utilization"`
}

func Summarize(results []ResourceUtilization) Summary {
	s := Summary{TotalResources: len(results)}
	if len(results) == 0 {
		return s
	}
	total := 0
	for _, r := range results {
		total += r.Utilization
		if r.IsOverallocated {
			s.Overallocated++
		}
		if r.HasConflicts() {
			s.WithConflicts++
		}
		s.ConflictCount += len(r.Conflicts)
		for _, c := range r.Conflicts {
			if c.Type == CrossProject {
				s.CrossProject++
			}
		}
		s.DateErrors += len(r.DateErrors)
	}
	s.AverageUtilization = math.Round(float64(total)/float64(len(results))*10) / 10
	return s
}
