package testkit

import (
	"strings"
	"testing"

	"climb/internal/ast"
	"climb/internal/source"
)

func TestCheckTreeInvariants(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.calc", []byte("1 + 2")))
	at := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}

	tests := []struct {
		name  string
		build func(e *ast.Exprs) ast.ExprID
		want  string
	}{
		{"valid", func(e *ast.Exprs) ast.ExprID {
			return e.NewOp(at(0, 5), ast.OpAdd, e.NewInt(at(0, 1), 1), e.NewInt(at(4, 5), 2))
		}, ""},
		{"empty span", func(e *ast.Exprs) ast.ExprID {
			return e.NewInt(at(2, 2), 1)
		}, "empty span"},
		{"beyond content", func(e *ast.Exprs) ast.ExprID {
			return e.NewInt(at(4, 9), 1)
		}, "beyond content"},
		{"wrong file", func(e *ast.Exprs) ast.ExprID {
			return e.NewInt(source.Span{File: file.ID + 1, Start: 0, End: 1}, 1)
		}, "points to file"},
		{"child escapes", func(e *ast.Exprs) ast.ExprID {
			return e.NewOp(at(0, 3), ast.OpAdd, e.NewInt(at(0, 1), 1), e.NewInt(at(4, 5), 2))
		}, "escapes"},
		{"overlap", func(e *ast.Exprs) ast.ExprID {
			return e.NewOp(at(0, 5), ast.OpAdd, e.NewInt(at(0, 3), 1), e.NewInt(at(2, 5), 2))
		}, "overlap"},
		{"shared child", func(e *ast.Exprs) ast.ExprID {
			leaf := e.NewInt(at(0, 1), 1)
			return e.NewOp(at(0, 5), ast.OpMul, leaf, leaf)
		}, "reachable twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exprs := ast.NewExprs(0)
			tree := &ast.Tree{Exprs: exprs, Root: tt.build(exprs)}
			err := CheckTreeInvariants(tree, file)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}

	if err := CheckTreeInvariants(nil, file); err == nil {
		t.Error("nil tree must fail")
	}
}
