// Package graph defines the GraphQL schema backing dashboard widgets.
package graph

import (
	"github.com/graphql-go/graphql"
)

var ConflictType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Conflict",
	Fields: graphql.Fields{
		"task1_id":   &graphql.Field{Type: graphql.String},
		"task1_name": &graphql.Field{Type: graphql.String},
		"task2_id":   &graphql.Field{Type: graphql.String},
		"task2_name": &graphql.Field{Type: graphql.String},
		"type":       &graphql.Field{Type: graphql.String},
	},
})

// ResourceUtilizationType is one resource row of the utilization widget.
var ResourceUtilizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ResourceUtilization",
	Fields: graphql.Fields{
		"resource_id":              &graphql.Field{Type: graphql.String},
		"name":                     &graphql.Field{Type: graphql.String},
		"type":                     &graphql.Field{Type: graphql.String},
		"status":                   &graphql.Field{Type: graphql.String},
		"assigned_tasks":           &graphql.Field{Type: graphql.Int},
		"active_tasks":             &graphql.Field{Type: graphql.Int},
		"max_concurrent":           &graphql.Field{Type: graphql.Int},
		"sov_assignments":          &graphql.Field{Type: graphql.Int},
		"total_allocation_percent": &graphql.Field{Type: graphql.Float},
		"utilization":              &graphql.Field{Type: graphql.Int},
		"is_overallocated":         &graphql.Field{Type: graphql.Boolean},
		"projects_count":           &graphql.Field{Type: graphql.Int},
		"conflicts":                &graphql.Field{Type: graphql.NewList(ConflictType)},
		"date_errors":              &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var UtilizationSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UtilizationSummary",
	Fields: graphql.Fields{
		"total_resources":     &graphql.Field{Type: graphql.Int},
		"overallocated":       &graphql.Field{Type: graphql.Int},
		"with_conflicts":      &graphql.Field{Type: graphql.Int},
		"conflict_count":      &graphql.Field{Type: graphql.Int},
		"cross_project":       &graphql.Field{Type: graphql.Int},
		"date_errors":         &graphql.Field{Type: graphql.Int},
		"average_utilization": &graphql.Field{Type: graphql.Float},
	},
})

var UtilizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Utilization",
	Fields: graphql.Fields{
		"summary":   &graphql.Field{Type: UtilizationSummaryType},
		"resources": &graphql.Field{Type: graphql.NewList(ResourceUtilizationType)},
	},
})

var MetricGroupType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MetricGroup",
	Fields: graphql.Fields{
		"key":   &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

// MetricType is one evaluated report metric.
var MetricType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Metric",
	Fields: graphql.Fields{
		"key":         &graphql.Field{Type: graphql.String},
		"label":       &graphql.Field{Type: graphql.String},
		"aggregation": &graphql.Field{Type: graphql.String},
		"format":      &graphql.Field{Type: graphql.String},
		"value":       &graphql.Field{Type: graphql.Float},
		"groups":      &graphql.Field{Type: graphql.NewList(MetricGroupType)},
	},
})

var ReportType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Report",
	Fields: graphql.Fields{
		"project_id": &graphql.Field{Type: graphql.String},
		"from":       &graphql.Field{Type: graphql.String},
		"to":         &graphql.Field{Type: graphql.String},
		"metrics":    &graphql.Field{Type: graphql.NewList(MetricType)},
	},
})

var MetricDefinitionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MetricDefinition",
	Fields: graphql.Fields{
		"key":         &graphql.Field{Type: graphql.String},
		"label":       &graphql.Field{Type: graphql.String},
		"entity":      &graphql.Field{Type: graphql.String},
		"aggregation": &graphql.Field{Type: graphql.String},
	},
})
