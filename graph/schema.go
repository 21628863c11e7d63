package graph

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// SDL is the GraphQL schema served by the gateway.
//
//go:embed schema.graphql
var SDL string

// FormatSchema validates SDL and writes it to w in canonical form.
func FormatSchema(w io.Writer) error {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SDL})
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	formatter.NewFormatter(w).FormatSchema(schema)
	return nil
}
