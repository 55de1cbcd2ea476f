// Package analyzer derives a structural description of a parsed SELECT:
// flattened WHERE conditions, output fields, tables, joins, grouping and
// ordering, and a weighted complexity score.
package analyzer

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/queryscope/sqlfront/pkg/parser"
)

// ConditionType categorizes a WHERE predicate.
type ConditionType string

// Condition categories.
const (
	ConditionEquality   ConditionType = "equality"
	ConditionComparison ConditionType = "comparison"
	ConditionPattern    ConditionType = "pattern"
	ConditionList       ConditionType = "list"
	ConditionRange      ConditionType = "range"
	ConditionOther      ConditionType = "other"
)

// Condition is one flattened WHERE predicate.
type Condition struct {
	Field    string        `json:"field"`
	Operator string        `json:"operator"`
	Value    any           `json:"value"`
	Type     ConditionType `json:"type"`
}

// FieldType categorizes a select-list item.
type FieldType string

// Field types.
const (
	FieldColumn     FieldType = "column"
	FieldFunction   FieldType = "function"
	FieldCase       FieldType = "case"
	FieldExpression FieldType = "expression"
)

// Field describes one select-list item.
type Field struct {
	Name        string    `json:"name"`
	Alias       string    `json:"alias,omitempty"`
	Type        FieldType `json:"type"`
	Table       string    `json:"table,omitempty"`
	Expression  string    `json:"expression,omitempty"`
	Aggregation bool      `json:"aggregation,omitempty"`
}

// Table describes one table referenced by FROM or a join.
type Table struct {
	Name   string `json:"name"`
	Alias  string `json:"alias,omitempty"`
	Schema string `json:"schema,omitempty"`
}

// JoinCondition is the rendered ON condition of a join.
type JoinCondition struct {
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
}

// Join describes one join.
type Join struct {
	Type      string         `json:"type"`
	Table     string         `json:"table"`
	Alias     string         `json:"alias,omitempty"`
	Condition *JoinCondition `json:"condition,omitempty"`
}

// OrderField is one ORDER BY entry.
type OrderField struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Limit carries LIMIT count and offset.
type Limit struct {
	Count  int64 `json:"count"`
	Offset int64 `json:"offset"`
}

// Analysis is the structural description of a SELECT.
type Analysis struct {
	Conditions []Condition  `json:"conditions"`
	Fields     []Field      `json:"fields"`
	Tables     []Table      `json:"tables"`
	Joins      []Join       `json:"joins"`
	OrderBy    []OrderField `json:"orderBy"`
	GroupBy    []string     `json:"groupBy"`
	Limit      *Limit       `json:"limit"`
}

// aggregates is the set of function names counted as aggregations.
var aggregates = map[string]bool{
	"COUNT":        true,
	"SUM":          true,
	"AVG":          true,
	"MAX":          true,
	"MIN":          true,
	"GROUP_CONCAT": true,
}

// Analyze walks a SELECT AST and produces its structural description.
func Analyze(stmt *parser.SelectStmt) *Analysis {
	a := &Analysis{}
	if stmt == nil {
		return a
	}

	a.Conditions = flattenConditions(stmt.Where)
	a.Fields = collectFields(stmt.Columns)
	a.Tables, a.Joins = collectTables(stmt.From)

	for _, item := range stmt.OrderBy {
		a.OrderBy = append(a.OrderBy, OrderField{
			Field:     Render(item.Expr),
			Direction: item.Direction(),
		})
	}
	for _, e := range stmt.GroupBy {
		a.GroupBy = append(a.GroupBy, Render(e))
	}
	if stmt.Limit != nil {
		a.Limit = &Limit{Count: exprToInt(stmt.Limit.Count), Offset: exprToInt(stmt.Limit.Offset)}
	}

	return a
}

// flattenConditions descends through AND/OR and NOT nodes and turns every
// remaining binary leaf into a condition.
func flattenConditions(expr parser.Expr) []Condition {
	var conditions []Condition

	var walk func(parser.Expr)
	walk = func(e parser.Expr) {
		switch n := e.(type) {
		case *parser.BinaryExpr:
			if n.Op == "AND" || n.Op == "OR" {
				walk(n.Left)
				walk(n.Right)
				return
			}
			conditions = append(conditions, Condition{
				Field:    Render(n.Left),
				Operator: n.Op,
				Value:    conditionValue(n.Right),
				Type:     classify(n.Op),
			})
		case *parser.UnaryExpr:
			if n.Op == "NOT" {
				walk(n.Expr)
			}
		}
	}
	walk(expr)

	return conditions
}

// classify maps an operator to its condition category.
func classify(op string) ConditionType {
	switch op {
	case "=", "!=", "<>":
		return ConditionEquality
	case ">", "<", ">=", "<=":
		return ConditionComparison
	case "LIKE", "ILIKE":
		return ConditionPattern
	case "IN":
		return ConditionList
	case "BETWEEN":
		return ConditionRange
	default:
		return ConditionOther
	}
}

// conditionValue extracts a comparable Go value from the right-hand side of
// a condition. Literals coerce to their natural types; lists and ranges
// become slices; anything else falls back to its rendered form.
func conditionValue(expr parser.Expr) any {
	switch n := expr.(type) {
	case *parser.Literal:
		return literalValue(n)
	case *parser.ValuesList:
		values := make([]any, 0, len(n.Values))
		for _, v := range n.Values {
			values = append(values, conditionValue(v))
		}
		return values
	case *parser.BetweenRange:
		return []any{conditionValue(n.Low), conditionValue(n.High)}
	default:
		return Render(expr)
	}
}

// literalValue coerces a literal to its Go value.
func literalValue(lit *parser.Literal) any {
	switch lit.Type {
	case parser.LiteralNumber:
		if lit.IsFloat() {
			return cast.ToFloat64(lit.Value)
		}
		return cast.ToInt64(lit.Value)
	case parser.LiteralBool:
		return cast.ToBool(lit.Value)
	case parser.LiteralNull:
		return nil
	default:
		return lit.Value
	}
}

// collectFields describes each select-list item.
func collectFields(items []parser.SelectItem) []Field {
	var fields []Field

	for _, item := range items {
		if item.Star {
			fields = append(fields, Field{Name: "*", Type: FieldColumn})
			continue
		}
		f := describeField(item.Expr)
		f.Alias = item.Alias
		fields = append(fields, f)
	}

	return fields
}

// describeField classifies one select-list expression.
func describeField(expr parser.Expr) Field {
	switch n := expr.(type) {
	case *parser.ColumnRef:
		return Field{Name: n.Column, Table: n.Table, Type: FieldColumn}
	case *parser.FuncCall:
		return Field{
			Name:        n.Name,
			Type:        FieldFunction,
			Expression:  Render(n),
			Aggregation: aggregates[strings.ToUpper(n.Name)],
		}
	case *parser.WindowFuncExpr:
		return Field{Name: n.Func.Name, Type: FieldFunction, Expression: Render(n)}
	case *parser.CaseExpr:
		return Field{Name: Render(n), Type: FieldCase, Expression: Render(n)}
	default:
		return Field{Name: Render(expr), Type: FieldExpression, Expression: Render(expr)}
	}
}

// collectTables flattens the FROM clause and each join's table.
func collectTables(from *parser.FromClause) ([]Table, []Join) {
	if from == nil {
		return nil, nil
	}

	var tables []Table
	var joins []Join

	for _, t := range from.Tables {
		tables = append(tables, Table{Name: t.Name, Alias: t.Alias, Schema: t.Schema})
	}

	for _, j := range from.Joins {
		join := Join{Type: string(j.Type)}
		if j.Table != nil {
			join.Table = j.Table.Name
			join.Alias = j.Table.Alias
			tables = append(tables, Table{Name: j.Table.Name, Alias: j.Table.Alias, Schema: j.Table.Schema})
		}
		if cond, ok := j.Condition.(*parser.BinaryExpr); ok {
			join.Condition = &JoinCondition{
				Left:     Render(cond.Left),
				Operator: cond.Op,
				Right:    Render(cond.Right),
			}
		}
		joins = append(joins, join)
	}

	return tables, joins
}

// exprToInt coerces a limit/offset expression to an integer, zero when
// absent or non-numeric.
func exprToInt(expr parser.Expr) int64 {
	if lit, ok := expr.(*parser.Literal); ok {
		return cast.ToInt64(lit.Value)
	}
	return 0
}
