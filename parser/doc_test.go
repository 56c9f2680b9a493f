package parser_test

import (
	goparser "go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The package doc is a block comment holding the grammar.  A stray comment
// terminator inside the grammar would truncate it and break the build.
func TestPackageDoc(t *testing.T) {
	f, err := goparser.ParseFile(token.NewFileSet(), "parser.go", nil, goparser.ParseComments)
	require.NoError(t, err)
	require.NotNil(t, f.Doc)
	doc := f.Doc.Text()
	assert.Contains(t, doc, "Package parser provides a lisp parser.")
	for _, rule := range []string{"expr", "number", "fraction", "exponent", "string", "symbol"} {
		assert.Contains(t, doc, rule+" ", "grammar rule %s", rule)
	}
	assert.Contains(t, doc, "Strings have no escape sequences.")
}
