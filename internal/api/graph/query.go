package graph

import (
	"context"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/service"
	"github.com/graphql-go/graphql"
)

// Resolvers is what the dashboard queries read from.
type Resolvers struct {
	Utilization service.UtilizationService
	Reports     service.ReportService
}

type metricDefinition struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Entity      string `json:"entity"`
	Aggregation string `json:"aggregation"`
}

// GetQueryFields returns the dashboard queries mounted in the root schema.
func GetQueryFields(r Resolvers) graphql.Fields {
	return graphql.Fields{
		"utilization": &graphql.Field{
			Type: UtilizationType,
			Args: graphql.FieldConfigArgument{
				"project_id":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"type":          &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"only_problems": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				req := contract.NewUtilizationRequest()
				req.ProjectID = p.Args["project_id"].(string)
				req.ResourceType = p.Args["type"].(string)
				req.OnlyProblems = p.Args["only_problems"].(bool)
				return r.Utilization.Compute(ctxOf(p), req)
			},
		},
		"report": &graphql.Field{
			Type: ReportType,
			Args: graphql.FieldConfigArgument{
				"metrics":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.String))},
				"project_id": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"from":       &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				"to":         &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				req := contract.NewReportRequest(stringList(p.Args["metrics"])...)
				req.ProjectID = p.Args["project_id"].(string)
				req.From = p.Args["from"].(string)
				req.To = p.Args["to"].(string)
				return r.Reports.Run(ctxOf(p), req)
			},
		},
		"metrics": &graphql.Field{
			Type: graphql.NewList(MetricDefinitionType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				defs := r.Reports.Metrics()
				out := make([]metricDefinition, 0, len(defs))
				for _, d := range defs {
					out = append(out, metricDefinition{
						Key:         d.Key,
						Label:       d.Label,
						Entity:      string(d.Entity),
						Aggregation: string(d.Aggregation),
					})
				}
				return out, nil
			},
		},
	}
}

func ctxOf(p graphql.ResolveParams) context.Context {
	if p.Context != nil {
		return p.Context
	}
	return context.Background()
}

func stringList(v interface{}) []string {
	items, _ := v.([]interface{})
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
