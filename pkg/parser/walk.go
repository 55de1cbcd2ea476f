package parser

// Node is any AST node reachable by Walk: a Statement, an Expr, or one of
// the clause structs.
type Node any

// Walk calls fn for node and every node below it, parents before children.
// Traversal of a subtree stops when fn returns false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *SelectStmt:
		if n.With != nil {
			Walk(n.With, fn)
		}
		for _, item := range n.Columns {
			Walk(item.Expr, fn)
		}
		if n.From != nil {
			Walk(n.From, fn)
		}
		Walk(n.Where, fn)
		for _, e := range n.GroupBy {
			Walk(e, fn)
		}
		Walk(n.Having, fn)
		walkOrderBy(n.OrderBy, fn)
		walkLimit(n.Limit, fn)

	case *UnionStmt:
		if n.With != nil {
			Walk(n.With, fn)
		}
		Walk(n.Left, fn)
		Walk(n.Right, fn)
		walkOrderBy(n.OrderBy, fn)
		walkLimit(n.Limit, fn)

	case *InsertStmt:
		Walk(n.Table, fn)
		for _, row := range n.Values {
			Walk(row, fn)
		}

	case *UpdateStmt:
		Walk(n.Table, fn)
		for _, a := range n.Assignments {
			Walk(a.Value, fn)
		}
		Walk(n.Where, fn)

	case *DeleteStmt:
		Walk(n.Table, fn)
		Walk(n.Where, fn)

	case *WithClause:
		for _, cte := range n.CTEs {
			Walk(cte.Query, fn)
		}

	case *FromClause:
		for _, t := range n.Tables {
			Walk(t, fn)
		}
		for _, j := range n.Joins {
			Walk(j, fn)
		}

	case *TableRef:
		Walk(n.Subquery, fn)

	case *Join:
		Walk(n.Table, fn)
		Walk(n.Condition, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.Expr, fn)

	case *FuncCall:
		for _, a := range n.Args {
			Walk(a, fn)
		}

	case *WindowFuncExpr:
		Walk(n.Func, fn)
		for _, e := range n.Over.PartitionBy {
			Walk(e, fn)
		}
		walkOrderBy(n.Over.OrderBy, fn)
		if f := n.Over.Frame; f != nil {
			walkBound(f.Start, fn)
			walkBound(f.End, fn)
		}

	case *CaseExpr:
		Walk(n.Operand, fn)
		for _, w := range n.Whens {
			Walk(w.Condition, fn)
			Walk(w.Result, fn)
		}
		Walk(n.Else, fn)

	case *IntervalExpr:
		Walk(n.Value, fn)

	case *SubqueryExpr:
		Walk(n.Query, fn)

	case *ValuesList:
		for _, v := range n.Values {
			Walk(v, fn)
		}

	case *BetweenRange:
		Walk(n.Low, fn)
		Walk(n.High, fn)
	}
}

func walkOrderBy(items []OrderByItem, fn func(Node) bool) {
	for _, item := range items {
		Walk(item.Expr, fn)
	}
}

func walkLimit(limit *LimitClause, fn func(Node) bool) {
	if limit == nil {
		return
	}
	Walk(limit.Count, fn)
	Walk(limit.Offset, fn)
}

func walkBound(b *FrameBound, fn func(Node) bool) {
	if b == nil {
		return
	}
	Walk(b.Offset, fn)
	if b.Interval != nil {
		Walk(b.Interval, fn)
	}
}
