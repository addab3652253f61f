package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_Embedded(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	for _, key := range []string{"total_projects", "budget_variance", "tasks_by_status", "percent_billed"} {
		_, err := c.Lookup(key)
		assert.NoError(t, err, key)
	}
	assert.Equal(t, len(c.Definitions()), len(c.Keys()))
}

func TestLookup_Unknown(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	_, err = c.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing key": `
metrics:
  - label: x
    entity: tasks
    aggregation: count`,
		"duplicate key": `
metrics:
  - {key: a, entity: tasks, aggregation: count}
  - {key: a, entity: tasks, aggregation: count}`,
		"unknown entity": `
metrics:
  - {key: a, entity: invoices, aggregation: count}`,
		"sum without field": `
metrics:
  - {key: a, entity: tasks, aggregation: sum}`,
		"group without group_by": `
metrics:
  - {key: a, entity: tasks, aggregation: group}`,
		"unknown aggregation": `
metrics:
  - {key: a, entity: tasks, aggregation: median}`,
		"undefined operand": `
metrics:
  - {key: a, entity: tasks, aggregation: count}
  - {key: b, aggregation: calculated, operator: ratio, operands: [a, zzz]}`,
		"nested calculated": `
metrics:
  - {key: a, entity: tasks, aggregation: count}
  - {key: b, aggregation: calculated, operator: add, operands: [a, a]}
  - {key: c, aggregation: calculated, operator: add, operands: [a, b]}`,
		"subtract arity": `
metrics:
  - {key: a, entity: tasks, aggregation: count}
  - {key: b, aggregation: calculated, operator: subtract, operands: [a, a, a]}`,
		"bad operator": `
metrics:
  - {key: a, entity: tasks, aggregation: count}
  - {key: b, aggregation: calculated, operator: pow, operands: [a, a]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestParseCatalog_MalformedYAML(t *testing.T) {
	_, err := ParseCatalog([]byte("metrics: [unterminated"))
	assert.Error(t, err)
}
