package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryscope/sqlfront/pkg/analyzer"
	"github.com/queryscope/sqlfront/pkg/parser"
)

func analyze(t *testing.T, sql string) *analyzer.Analysis {
	t.Helper()
	stmt, err := parser.Parse(sql)
	require.NoError(t, err)
	sel, ok := stmt.(*parser.SelectStmt)
	require.True(t, ok, "expected SELECT, got %T", stmt)
	return analyzer.Analyze(sel)
}

func TestConditionCategories(t *testing.T) {
	sql := "SELECT * FROM users WHERE email IS NOT NULL AND age BETWEEN 18 AND 65 AND name LIKE 'A%'"
	a := analyze(t, sql)

	require.Len(t, a.Conditions, 3)
	assert.Equal(t, analyzer.ConditionOther, a.Conditions[0].Type)
	assert.Equal(t, "IS NOT", a.Conditions[0].Operator)
	assert.Equal(t, analyzer.ConditionRange, a.Conditions[1].Type)
	assert.Equal(t, analyzer.ConditionPattern, a.Conditions[2].Type)
}

func TestConditionClassification(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want analyzer.ConditionType
	}{
		{name: "equality", sql: "SELECT * FROM t WHERE a = 1", want: analyzer.ConditionEquality},
		{name: "not equal", sql: "SELECT * FROM t WHERE a != 1", want: analyzer.ConditionEquality},
		{name: "angle not equal", sql: "SELECT * FROM t WHERE a <> 1", want: analyzer.ConditionEquality},
		{name: "comparison", sql: "SELECT * FROM t WHERE a >= 1", want: analyzer.ConditionComparison},
		{name: "pattern", sql: "SELECT * FROM t WHERE a ILIKE 'x%'", want: analyzer.ConditionPattern},
		{name: "list", sql: "SELECT * FROM t WHERE a IN (1, 2)", want: analyzer.ConditionList},
		{name: "range", sql: "SELECT * FROM t WHERE a BETWEEN 1 AND 2", want: analyzer.ConditionRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(t, tt.sql)
			require.Len(t, a.Conditions, 1)
			assert.Equal(t, tt.want, a.Conditions[0].Type)
		})
	}
}

func TestConditionValues(t *testing.T) {
	a := analyze(t, "SELECT * FROM t WHERE age > 18 AND score = 1.5 AND name = 'Ann' AND ok = TRUE AND tag IN ('a', 'b')")

	require.Len(t, a.Conditions, 5)
	assert.Equal(t, int64(18), a.Conditions[0].Value)
	assert.Equal(t, 1.5, a.Conditions[1].Value)
	assert.Equal(t, "Ann", a.Conditions[2].Value)
	assert.Equal(t, true, a.Conditions[3].Value)
	assert.Equal(t, []any{"a", "b"}, a.Conditions[4].Value)
}

func TestConditionsDescendThroughNot(t *testing.T) {
	a := analyze(t, "SELECT * FROM t WHERE NOT (a = 1 OR b = 2)")
	assert.Len(t, a.Conditions, 2)
}

func TestQualifiedFieldNames(t *testing.T) {
	a := analyze(t, "SELECT * FROM users u WHERE u.age > 21")
	require.Len(t, a.Conditions, 1)
	assert.Equal(t, "u.age", a.Conditions[0].Field)
}

func TestFieldTypes(t *testing.T) {
	sql := "SELECT name, COUNT(id) AS n, CASE WHEN a = 1 THEN 'x' END AS c, price * 2 AS doubled FROM t"
	a := analyze(t, sql)

	require.Len(t, a.Fields, 4)

	assert.Equal(t, analyzer.FieldColumn, a.Fields[0].Type)
	assert.Equal(t, "name", a.Fields[0].Name)

	assert.Equal(t, analyzer.FieldFunction, a.Fields[1].Type)
	assert.Equal(t, "COUNT", a.Fields[1].Name)
	assert.Equal(t, "n", a.Fields[1].Alias)
	assert.True(t, a.Fields[1].Aggregation)

	assert.Equal(t, analyzer.FieldCase, a.Fields[2].Type)
	assert.Equal(t, "c", a.Fields[2].Alias)

	assert.Equal(t, analyzer.FieldExpression, a.Fields[3].Type)
	assert.Equal(t, "doubled", a.Fields[3].Alias)
}

func TestNonAggregateFunction(t *testing.T) {
	a := analyze(t, "SELECT UPPER(name) FROM t")
	require.Len(t, a.Fields, 1)
	assert.Equal(t, analyzer.FieldFunction, a.Fields[0].Type)
	assert.False(t, a.Fields[0].Aggregation)
}

func TestTablesAndJoins(t *testing.T) {
	sql := "SELECT u.name, COUNT(o.id) AS order_count FROM users u " +
		"LEFT JOIN orders o ON u.id = o.user_id " +
		"GROUP BY u.id, u.name"
	a := analyze(t, sql)

	require.Len(t, a.Tables, 2)
	assert.Equal(t, "users", a.Tables[0].Name)
	assert.Equal(t, "u", a.Tables[0].Alias)
	assert.Equal(t, "orders", a.Tables[1].Name)

	require.Len(t, a.Joins, 1)
	join := a.Joins[0]
	assert.Equal(t, "LEFT", join.Type)
	assert.Equal(t, "orders", join.Table)
	require.NotNil(t, join.Condition)
	assert.Equal(t, "u.id", join.Condition.Left)
	assert.Equal(t, "=", join.Condition.Operator)
	assert.Equal(t, "o.user_id", join.Condition.Right)

	aggregates := 0
	for _, f := range a.Fields {
		if f.Aggregation {
			aggregates++
		}
	}
	assert.GreaterOrEqual(t, aggregates, 1)
}

func TestOrderGroupLimit(t *testing.T) {
	sql := "SELECT city, COUNT(id) FROM users GROUP BY city ORDER BY city DESC LIMIT 10 OFFSET 5"
	a := analyze(t, sql)

	require.Len(t, a.OrderBy, 1)
	assert.Equal(t, "city", a.OrderBy[0].Field)
	assert.Equal(t, "DESC", a.OrderBy[0].Direction)

	assert.Equal(t, []string{"city"}, a.GroupBy)

	require.NotNil(t, a.Limit)
	assert.Equal(t, int64(10), a.Limit.Count)
	assert.Equal(t, int64(5), a.Limit.Offset)
}

func TestLimitAbsent(t *testing.T) {
	a := analyze(t, "SELECT * FROM t")
	assert.Nil(t, a.Limit)
}

func TestSchemaQualifiedTable(t *testing.T) {
	a := analyze(t, "SELECT * FROM analytics.events")
	require.Len(t, a.Tables, 1)
	assert.Equal(t, "analytics", a.Tables[0].Schema)
	assert.Equal(t, "events", a.Tables[0].Name)
}

// ---------- Complexity ----------

func TestComplexitySimple(t *testing.T) {
	// Aggregate-free, join-free, single-table, no GROUP BY / ORDER BY.
	for _, sql := range []string{
		"SELECT * FROM users",
		"SELECT name FROM users WHERE id = 1",
		"SELECT a, b FROM t WHERE a > 1 LIMIT 10",
	} {
		a := analyze(t, sql)
		c := analyzer.Score(a)
		assert.Equal(t, analyzer.LevelSimple, c.Level, sql)
	}
}

func TestComplexityMedium(t *testing.T) {
	sql := "SELECT city, COUNT(id) FROM users WHERE active = TRUE GROUP BY city ORDER BY city"
	c := analyzer.Score(analyze(t, sql))

	// 1 condition (2) + 1 aggregate (2) + grouping (3) + ordering (2) = 9
	assert.Equal(t, 9, c.Score)
	assert.Equal(t, analyzer.LevelMedium, c.Level)
	assert.Len(t, c.Factors, 4)
}

func TestComplexityComplex(t *testing.T) {
	sql := "SELECT u.city, COUNT(o.id), SUM(o.total) FROM users u " +
		"JOIN orders o ON u.id = o.user_id " +
		"JOIN items i ON o.id = i.order_id " +
		"WHERE u.active = TRUE AND o.total > 100 " +
		"GROUP BY u.city ORDER BY u.city"
	c := analyzer.Score(analyze(t, sql))

	// 2 conditions (4) + 2 extra tables (6) + 2 joins (8) + 2 aggregates (4)
	// + grouping (3) + ordering (2) = 27
	assert.Equal(t, 27, c.Score)
	assert.Equal(t, analyzer.LevelComplex, c.Level)
}

func TestComplexityFactorsReadable(t *testing.T) {
	c := analyzer.Score(analyze(t, "SELECT COUNT(id) FROM t WHERE a = 1 GROUP BY b"))
	require.NotEmpty(t, c.Factors)
	for _, f := range c.Factors {
		assert.Regexp(t, `\(\+\d+\)$`, f)
	}
}

// ---------- Render ----------

func TestRender(t *testing.T) {
	stmt, err := parser.Parse("SELECT COUNT(DISTINCT o.id), EXTRACT(YEAR FROM ts), CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t")
	require.NoError(t, err)
	sel := stmt.(*parser.SelectStmt)

	assert.Equal(t, "COUNT(DISTINCT o.id)", analyzer.Render(sel.Columns[0].Expr))
	assert.Equal(t, "EXTRACT(YEAR FROM ts)", analyzer.Render(sel.Columns[1].Expr))
	assert.Equal(t, "CASE WHEN a = 1 THEN 'x' ELSE 'y' END", analyzer.Render(sel.Columns[2].Expr))
}
