package graph

import (
	"github.com/graphql-go/graphql"
)

// CreateSchema builds the read-only dashboard schema.
func CreateSchema(r Resolvers) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: GetQueryFields(r),
		}),
	})
}
