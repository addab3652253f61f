// Package report evaluates report-builder metrics over typed entity
// records. Metric definitions come from an embedded YAML catalog.
package report

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrInvalidDefinition = errors.New("invalid metric definition")
)

type Aggregation string

const (
	Count      Aggregation = "count"
	Sum        Aggregation = "sum"
	Avg        Aggregation = "avg"
	Group      Aggregation = "group"
	Calculated Aggregation = "calculated"
)

type Operator string

const (
	Subtract Operator = "subtract"
	Add      Operator = "add"
	Ratio    Operator = "ratio"
	Percent  Operator = "percent"
)

// Definition describes one metric.
type Definition struct {
	Key         string            `yaml:"key"`
	Label       string            `yaml:"label"`
	Entity      Entity            `yaml:"entity"`
	Aggregation Aggregation       `yaml:"aggregation"`
	Filter      map[string]string `yaml:"filter"`
	Field       string            `yaml:"field"`
	GroupBy     string            `yaml:"group_by"`
	Operands    []string          `yaml:"operands"`
	Operator    Operator          `yaml:"operator"`
	Format      string            `yaml:"format"`
}

// Catalog is an ordered, validated set of metric definitions.
type Catalog struct {
	defs  []Definition
	byKey map[string]Definition
}

type catalogFile struct {
	Metrics []Definition `yaml:"metrics"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog parses and validates a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing metric catalog: %w", err)
	}
	c := &Catalog{byKey: make(map[string]Definition, len(f.Metrics))}
	for _, d := range f.Metrics {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: metric without key", ErrInvalidDefinition)
		}
		if _, dup := c.byKey[d.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidDefinition, d.Key)
		}
		c.byKey[d.Key] = d
		c.defs = append(c.defs, d)
	}
	for _, d := range c.defs {
		if err := c.validate(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) validate(d Definition) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, d.Key, fmt.Sprintf(format, args...))
	}
	if d.Aggregation == Calculated {
		switch d.Operator {
		case Subtract, Add, Ratio, Percent:
		default:
			return bad("unknown operator %q", d.Operator)
		}
		if len(d.Operands) < 2 {
			return bad("calculated metrics need at least two operands")
		}
		if d.Operator != Add && len(d.Operands) != 2 {
			return bad("%s takes exactly two operands", d.Operator)
		}
		for _, op := range d.Operands {
			ref, ok := c.byKey[op]
			if !ok {
				return bad("operand %q is not defined", op)
			}
			if ref.Aggregation == Calculated || ref.Aggregation == Group {
				return bad("operand %q must be a scalar base metric", op)
			}
		}
		return nil
	}

	if !validEntities[d.Entity] {
		return bad("unknown entity %q", d.Entity)
	}
	switch d.Aggregation {
	case Count:
	case Sum, Avg:
		if d.Field == "" {
			return bad("%s requires a field", d.Aggregation)
		}
	case Group:
		if d.GroupBy == "" {
			return bad("group requires group_by")
		}
	default:
		return bad("unknown aggregation %q", d.Aggregation)
	}
	return nil
}

// Lookup returns the definition for key.
func (c *Catalog) Lookup(key string) (Definition, error) {
	d, ok := c.byKey[key]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return d, nil
}

// Definitions returns every metric in catalog order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Keys returns the metric keys sorted alphabetically.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.defs))
	for _, d := range c.defs {
		keys = append(keys, d.Key)
	}
	sort.Strings(keys)
	return keys
}
