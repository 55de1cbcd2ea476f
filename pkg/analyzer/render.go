package analyzer

import (
	"strings"

	"github.com/queryscope/sqlfront/pkg/parser"
)

// Render produces a readable string for any expression. Column references
// render as table.name when qualified; subqueries collapse to a placeholder.
func Render(expr parser.Expr) string {
	switch n := expr.(type) {
	case nil:
		return ""

	case *parser.ColumnRef:
		if n.Table != "" {
			return n.Table + "." + n.Column
		}
		return n.Column

	case *parser.StarExpr:
		return "*"

	case *parser.Literal:
		if n.Type == parser.LiteralString {
			return "'" + n.Value + "'"
		}
		return n.Value

	case *parser.BinaryExpr:
		return Render(n.Left) + " " + n.Op + " " + Render(n.Right)

	case *parser.UnaryExpr:
		if n.Op == "NOT" || n.Op == "EXISTS" {
			return n.Op + " " + Render(n.Expr)
		}
		return n.Op + Render(n.Expr)

	case *parser.FuncCall:
		var b strings.Builder
		b.WriteString(n.Name)
		b.WriteByte('(')
		if n.Distinct {
			b.WriteString("DISTINCT ")
		}
		if n.IsExtract && len(n.Args) == 2 {
			b.WriteString(Render(n.Args[0]))
			b.WriteString(" FROM ")
			b.WriteString(Render(n.Args[1]))
		} else {
			for i, arg := range n.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(Render(arg))
			}
		}
		b.WriteByte(')')
		return b.String()

	case *parser.WindowFuncExpr:
		return Render(n.Func) + " OVER (...)"

	case *parser.CaseExpr:
		var b strings.Builder
		b.WriteString("CASE")
		if n.Operand != nil {
			b.WriteString(" " + Render(n.Operand))
		}
		for _, w := range n.Whens {
			b.WriteString(" WHEN " + Render(w.Condition) + " THEN " + Render(w.Result))
		}
		if n.Else != nil {
			b.WriteString(" ELSE " + Render(n.Else))
		}
		b.WriteString(" END")
		return b.String()

	case *parser.IntervalExpr:
		return "INTERVAL " + Render(n.Value) + " " + n.Unit

	case *parser.SubqueryExpr:
		return "(subquery)"

	case *parser.ValuesList:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = Render(v)
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case *parser.BetweenRange:
		return Render(n.Low) + " AND " + Render(n.High)

	default:
		return ""
	}
}
