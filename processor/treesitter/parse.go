package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/coderef/processor"
)

// Parse parses src with lang and returns the wrapped root, mirroring the
// teacher's InspectSource: a fresh *sitter.Parser per call, parsed with
// ParseCtx against context.Background().
func Parse(lang *sitter.Language, src []byte) (processor.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("treesitter: failed to parse source: %w", err)
	}
	return WrapTree(tree), nil
}
