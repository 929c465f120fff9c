package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"climb/internal/ast"
	"climb/internal/source"
)

// TreeNode is the nested, arena-free form of an expression used by the
// JSON, indented and dump renderers.
type TreeNode struct {
	Kind     string      `json:"kind"`
	Op       string      `json:"op,omitempty"`
	Value    *int32      `json:"value,omitempty"`
	Name     string      `json:"name,omitempty"`
	Span     source.Span `json:"span"`
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree converts the subtree at id.
func BuildTree(tree *ast.Tree, id ast.ExprID) *TreeNode {
	expr := tree.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	node := &TreeNode{Kind: expr.Kind.String(), Span: expr.Span}
	switch expr.Kind {
	case ast.ExprInt:
		data, _ := tree.Exprs.Int(id)
		v := data.Value
		node.Value = &v
	case ast.ExprSym:
		node.Name, _ = tree.Exprs.SymName(id)
	case ast.ExprOp:
		data, _ := tree.Exprs.OpData(id)
		node.Op = data.Op.Name()
		for _, child := range data.Children {
			node.Children = append(node.Children, BuildTree(tree, child))
		}
	}
	return node
}

// TreeOutput is the JSON document written by FormatTreeJSON.
type TreeOutput struct {
	File   string    `json:"file,omitempty"`
	SExpr  string    `json:"sexpr"`
	Nodes  int       `json:"nodes"`
	Depth  int       `json:"depth"`
	Root   *TreeNode `json:"root"`
	Result *int32    `json:"result,omitempty"`
}

// FormatTreeJSON writes tree with its S-expression rendering and shape.
// result is included when non-nil.
func FormatTreeJSON(w io.Writer, path string, tree *ast.Tree, result *int32) error {
	out := TreeOutput{
		File:   path,
		SExpr:  tree.String(),
		Nodes:  tree.Len(),
		Depth:  tree.Depth(),
		Root:   BuildTree(tree, tree.Root),
		Result: result,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatTreePretty draws the tree with box characters, one node per line.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := BuildTree(tree, tree.Root)
	if root == nil {
		return nil
	}
	var sb strings.Builder
	writePrettyNode(&sb, root, fs, "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writePrettyNode(sb *strings.Builder, n *TreeNode, fs *source.FileSet, first, rest string) {
	sb.WriteString(first)
	switch n.Kind {
	case "Int":
		fmt.Fprintf(sb, "%d", *n.Value)
	case "Sym":
		sb.WriteString(n.Name)
	default:
		sb.WriteString(n.Op)
	}
	if fs != nil {
		s, e := fs.Resolve(n.Span)
		fmt.Fprintf(sb, " (%d:%d-%d:%d)", s.Line, s.Col, e.Line, e.Col)
	}
	sb.WriteByte('\n')
	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			writePrettyNode(sb, child, fs, rest+"└─ ", rest+"   ")
		} else {
			writePrettyNode(sb, child, fs, rest+"├─ ", rest+"│  ")
		}
	}
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// FormatTreeDump writes a Go-syntax dump of the nested tree.
func FormatTreeDump(w io.Writer, tree *ast.Tree) {
	dumpConfig.Fdump(w, BuildTree(tree, tree.Root))
}
