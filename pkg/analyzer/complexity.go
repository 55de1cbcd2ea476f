package analyzer

import "fmt"

// Complexity level thresholds.
const (
	simpleMax = 5
	mediumMax = 15
)

// Per-contributor weights.
const (
	weightCondition  = 2
	weightExtraTable = 3
	weightJoin       = 4
	weightAggregate  = 2
	weightGroupBy    = 3
	weightOrderBy    = 2
)

// ComplexityLevel buckets a complexity score.
type ComplexityLevel string

// Complexity levels.
const (
	LevelSimple  ComplexityLevel = "simple"
	LevelMedium  ComplexityLevel = "medium"
	LevelComplex ComplexityLevel = "complex"
)

// Complexity is the weighted score of a query with the factors that
// contributed to it.
type Complexity struct {
	Score   int             `json:"score"`
	Level   ComplexityLevel `json:"level"`
	Factors []string        `json:"factors"`
}

// Score computes the weighted complexity of an analysis.
func Score(a *Analysis) *Complexity {
	c := &Complexity{}

	if n := len(a.Conditions); n > 0 {
		c.add(n*weightCondition, "%d filter conditions", n)
	}
	if extra := len(a.Tables) - 1; extra > 0 {
		c.add(extra*weightExtraTable, "%d additional tables", extra)
	}
	if n := len(a.Joins); n > 0 {
		c.add(n*weightJoin, "%d joins", n)
	}
	if n := countAggregates(a.Fields); n > 0 {
		c.add(n*weightAggregate, "%d aggregate functions", n)
	}
	if len(a.GroupBy) > 0 {
		c.add(weightGroupBy, "grouping")
	}
	if len(a.OrderBy) > 0 {
		c.add(weightOrderBy, "ordering")
	}

	switch {
	case c.Score <= simpleMax:
		c.Level = LevelSimple
	case c.Score <= mediumMax:
		c.Level = LevelMedium
	default:
		c.Level = LevelComplex
	}

	return c
}

// add accumulates a contributor's points and records its factor string.
func (c *Complexity) add(points int, format string, args ...any) {
	c.Score += points
	c.Factors = append(c.Factors, fmt.Sprintf(format+" (+%d)", append(args, points)...))
}

func countAggregates(fields []Field) int {
	n := 0
	for _, f := range fields {
		if f.Aggregation {
			n++
		}
	}
	return n
}
