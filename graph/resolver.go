// Package graph provides the GraphQL schema and resolvers for the catalog-api.
package graph

import (
	"context"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

// Resolver is the root resolver for GraphQL queries and mutations.
// It holds no catalog state: every resolver reads the catalog handle from
// its request context through the datasource package.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		logger: logger,
	}
}

// NewSchema parses SDL against resolver. maxParallelism caps how many sibling
// fields of one request the engine resolves at once.
func NewSchema(resolver *Resolver, maxParallelism int) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(SDL, resolver,
		graphql.UseFieldResolvers(),
		graphql.MaxParallelism(maxParallelism),
		graphql.Logger(&panicLogger{logger: resolver.logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL schema: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics recovered by the engine to zap.
type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.logger.Error("graphql: panic occurred", zap.Any("panic", value), zap.Stack("stack"))
}
