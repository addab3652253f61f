package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// Filter narrows the records a metric sees. Zero values do not filter.
// From and To are inclusive calendar days.
type Filter struct {
	ProjectID string
	From      *time.Time
	To        *time.Time
}

type GroupCount struct {
	Key   string
	Count int
}

type Result struct {
	Key         string
	Label       string
	Aggregation Aggregation
	Format      string
	Value       float64
	Groups      []GroupCount
}

// Evaluate computes a single metric. Calculated metrics resolve their
// operands through the catalog.
func (c *Catalog) Evaluate(def Definition, ds *Dataset, f Filter) (Result, error) {
	res := Result{Key: def.Key, Label: def.Label, Aggregation: def.Aggregation, Format: def.Format}

	if def.Aggregation == Calculated {
		values := make([]float64, 0, len(def.Operands))
		for _, key := range def.Operands {
			opDef, err := c.Lookup(key)
			if err != nil {
				return Result{}, fmt.Errorf("metric %s: %w", def.Key, err)
			}
			if opDef.Aggregation == Calculated || opDef.Aggregation == Group {
				return Result{}, fmt.Errorf("%w: %s: operand %q must be a scalar base metric",
					ErrInvalidDefinition, def.Key, key)
			}
			v, err := aggregate(opDef, matching(opDef, ds, f))
			if err != nil {
				return Result{}, err
			}
			values = append(values, v.Value)
		}
		v, err := combine(def, values)
		if err != nil {
			return Result{}, err
		}
		res.Value = v
		return res, nil
	}

	agg, err := aggregate(def, matching(def, ds, f))
	if err != nil {
		return Result{}, err
	}
	res.Value = agg.Value
	res.Groups = agg.Groups
	return res, nil
}

// EvaluateAll evaluates keys in order. An empty key list evaluates the
// whole catalog.
func (c *Catalog) EvaluateAll(keys []string, ds *Dataset, f Filter) ([]Result, error) {
	defs := c.Definitions()
	if len(keys) > 0 {
		defs = defs[:0]
		for _, k := range keys {
			d, err := c.Lookup(k)
			if err != nil {
				return nil, err
			}
			defs = append(defs, d)
		}
	}
	out := make([]Result, 0, len(defs))
	for _, d := range defs {
		r, err := c.Evaluate(d, ds, f)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func matching(def Definition, ds *Dataset, f Filter) []Record {
	var out []Record
	for _, r := range ds.Records(def.Entity) {
		if f.ProjectID != "" && r.ProjectKey() != f.ProjectID {
			continue
		}
		if f.From != nil || f.To != nil {
			d, ok := r.ReportDate()
			if !ok {
				continue
			}
			if f.From != nil && domain.StartOfDay(d).Before(domain.StartOfDay(*f.From)) {
				continue
			}
			if f.To != nil && domain.StartOfDay(d).After(domain.StartOfDay(*f.To)) {
				continue
			}
		}
		if !matchesFilter(r, def.Filter) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesFilter(r Record, filter map[string]string) bool {
	for field, want := range filter {
		got, ok := r.Text(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func aggregate(def Definition, recs []Record) (Result, error) {
	var res Result
	switch def.Aggregation {
	case Count:
		res.Value = float64(len(recs))
	case Sum, Avg:
		var total float64
		n := 0
		for _, r := range recs {
			v, ok := r.Number(def.Field)
			if !ok {
				continue
			}
			total += v
			n++
		}
		res.Value = total
		if def.Aggregation == Avg {
			res.Value = 0
			if n > 0 {
				res.Value = total / float64(n)
			}
		}
	case Group:
		counts := make(map[string]int)
		for _, r := range recs {
			k, ok := r.Text(def.GroupBy)
			if !ok {
				continue
			}
			counts[k]++
		}
		for k, n := range counts {
			res.Groups = append(res.Groups, GroupCount{Key: k, Count: n})
			res.Value += float64(n)
		}
		sort.Slice(res.Groups, func(i, j int) bool { return res.Groups[i].Key < res.Groups[j].Key })
	default:
		return Result{}, fmt.Errorf("%w: %s: unknown aggregation %q", ErrInvalidDefinition, def.Key, def.Aggregation)
	}
	return res, nil
}

func combine(def Definition, values []float64) (float64, error) {
	if def.Operator != Add && len(values) != 2 {
		return 0, fmt.Errorf("%w: %s: %s takes exactly two operands", ErrInvalidDefinition, def.Key, def.Operator)
	}
	switch def.Operator {
	case Add:
		var total float64
		for _, v := range values {
			total += v
		}
		return total, nil
	case Subtract:
		return values[0] - values[1], nil
	case Ratio, Percent:
		if values[1] == 0 {
			return 0, nil
		}
		v := values[0] / values[1]
		if def.Operator == Percent {
			v *= 100
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s: unknown operator %q", ErrInvalidDefinition, def.Key, def.Operator)
}
