// Package sqlfront is the public façade of the SQL front-end: it wraps the
// lexer → parser → analyzer pipeline into result envelopes that carry either
// a typed AST plus derived name lists, or a list of structured diagnostics.
package sqlfront

import (
	"log/slog"

	"github.com/queryscope/sqlfront/pkg/analyzer"
	"github.com/queryscope/sqlfront/pkg/parser"
	"github.com/queryscope/sqlfront/pkg/sqlerr"
	"github.com/queryscope/sqlfront/pkg/token"
)

// Options configures the façade entry points. The zero value is ready to
// use.
type Options struct {
	// Strict rejects trailing tokens after the statement.
	Strict bool
	// IncludeComments retains comment tokens in the Tokens list.
	IncludeComments bool
	// IncludeTokens returns the token list alongside the AST.
	IncludeTokens bool
	// Dialect is an informational label; the grammar is dialect-agnostic.
	Dialect string
	// Logger receives debug-level tracing. Nil disables logging.
	Logger *slog.Logger
}

func (o *Options) orDefault() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

func (o Options) log() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// ParseResult is the envelope returned by Parse.
type ParseResult struct {
	Success bool             `json:"success"`
	AST     parser.Statement `json:"ast,omitempty"`
	Tables  []string         `json:"tables"`
	Columns []string         `json:"columns"`
	Tokens  []token.Token    `json:"tokens,omitempty"`
	Errors  []*sqlerr.Error  `json:"errors,omitempty"`
}

// Parse parses the SQL and wraps the outcome. On failure the AST is nil and
// Errors holds the single diagnostic; internal panics are reported as
// UNEXPECTED_ERROR rather than propagated.
func Parse(sql string, opts *Options) (result *ParseResult) {
	o := opts.orDefault()

	defer func() {
		if r := recover(); r != nil {
			o.log().Debug("parse panicked", "recover", r)
			result = &ParseResult{Errors: []*sqlerr.Error{sqlerr.Internal(r)}}
		}
	}()

	result = &ParseResult{}

	stmt, err := parser.ParseWithOptions(sql, parser.Options{
		Strict:  o.Strict,
		Dialect: o.Dialect,
	})
	if err != nil {
		result.Errors = []*sqlerr.Error{toDiagnostic(err)}
		o.log().Debug("parse failed", "kind", result.Errors[0].Kind, "error", err)
		return result
	}

	result.Success = true
	result.AST = stmt
	result.Tables = collectTables(stmt)
	result.Columns = collectColumns(stmt)

	if o.IncludeTokens {
		// The parse succeeded, so re-tokenizing cannot fail.
		result.Tokens, _ = parser.Tokenize(sql, parser.LexOptions{IncludeComments: o.IncludeComments})
	}

	o.log().Debug("parse succeeded", "tables", len(result.Tables), "columns", len(result.Columns))
	return result
}

// ValidationResult is the envelope returned by Validate.
type ValidationResult struct {
	Valid  bool            `json:"valid"`
	Errors []*sqlerr.Error `json:"errors,omitempty"`
}

// Validate is a thin shim over Parse: Valid mirrors Parse's Success exactly.
func Validate(sql string, opts *Options) *ValidationResult {
	result := Parse(sql, opts)
	return &ValidationResult{Valid: result.Success, Errors: result.Errors}
}

// ExtractTables returns the table names referenced by the SQL, in AST order
// with duplicates preserved for self-joins. Parse failures yield an empty
// list.
func ExtractTables(sql string) []string {
	result := Parse(sql, nil)
	if !result.Success {
		return []string{}
	}
	return result.Tables
}

// ExtractColumns returns the de-duplicated column names referenced by the
// SQL. Parse failures yield an empty list.
func ExtractColumns(sql string) []string {
	result := Parse(sql, nil)
	if !result.Success {
		return []string{}
	}
	return result.Columns
}

// QueryInfo identifies the analyzed statement.
type QueryInfo struct {
	Type string `json:"type"`
	SQL  string `json:"sql"`
}

// AnalyzeResult is the envelope returned by Analyze.
type AnalyzeResult struct {
	Success    bool                 `json:"success"`
	Query      QueryInfo            `json:"query"`
	Analysis   *analyzer.Analysis   `json:"analysis,omitempty"`
	Complexity *analyzer.Complexity `json:"complexity,omitempty"`
	AST        parser.Statement     `json:"ast,omitempty"`
	Errors     []*sqlerr.Error      `json:"errors,omitempty"`
}

// Analyze parses the SQL and, for SELECT statements, derives the structural
// query description and complexity score. Non-SELECT statements get an empty
// analysis with tables still populated.
func Analyze(sql string, opts *Options) *AnalyzeResult {
	parsed := Parse(sql, opts)
	if !parsed.Success {
		return &AnalyzeResult{Query: QueryInfo{SQL: sql}, Errors: parsed.Errors}
	}

	result := &AnalyzeResult{
		Success: true,
		Query:   QueryInfo{Type: statementType(parsed.AST), SQL: sql},
		AST:     parsed.AST,
	}

	if sel, ok := parsed.AST.(*parser.SelectStmt); ok {
		result.Analysis = analyzer.Analyze(sel)
		result.Complexity = analyzer.Score(result.Analysis)
		return result
	}

	// Non-SELECT: empty analysis, tables populated from the AST.
	result.Analysis = &analyzer.Analysis{}
	for _, name := range parsed.Tables {
		result.Analysis.Tables = append(result.Analysis.Tables, analyzer.Table{Name: name})
	}
	result.Complexity = analyzer.Score(result.Analysis)
	return result
}

// Tokenize scans the SQL and returns the full token list.
func Tokenize(sql string, opts *Options) ([]token.Token, error) {
	o := opts.orDefault()
	return parser.Tokenize(sql, parser.LexOptions{IncludeComments: o.IncludeComments})
}

// statementType names the statement kind for the analysis envelope.
func statementType(stmt parser.Statement) string {
	switch stmt.(type) {
	case *parser.SelectStmt:
		return "SELECT"
	case *parser.UnionStmt:
		return "UNION"
	case *parser.InsertStmt:
		return "INSERT"
	case *parser.UpdateStmt:
		return "UPDATE"
	case *parser.DeleteStmt:
		return "DELETE"
	default:
		return ""
	}
}

// toDiagnostic coerces any pipeline error into a structured diagnostic.
func toDiagnostic(err error) *sqlerr.Error {
	if e := sqlerr.As(err); e != nil {
		return e
	}
	return sqlerr.Internal(err)
}

// collectTables gathers every TableRef name in AST order. Duplicates are
// preserved so self-joins stay visible.
func collectTables(stmt parser.Statement) []string {
	tables := []string{}
	parser.Walk(stmt, func(n parser.Node) bool {
		if t, ok := n.(*parser.TableRef); ok && t.Name != "" {
			tables = append(tables, t.Name)
		}
		return true
	})
	return tables
}

// collectColumns gathers the de-duplicated column names, preserving first
// occurrence order. Qualified wildcards are skipped.
func collectColumns(stmt parser.Statement) []string {
	columns := []string{}
	seen := map[string]bool{}
	parser.Walk(stmt, func(n parser.Node) bool {
		if c, ok := n.(*parser.ColumnRef); ok && c.Column != "*" && !seen[c.Column] {
			seen[c.Column] = true
			columns = append(columns, c.Column)
		}
		return true
	})
	return columns
}
