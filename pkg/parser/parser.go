// Package parser provides SQL lexing and parsing into a typed AST.
//
// # Usage
//
//	stmt, err := parser.Parse("SELECT a, b FROM t")
//	if err != nil {
//	    // err is a *sqlerr.Error with kind and position
//	}
//
// # Grammar Overview
//
// The parser implements a single-pass recursive descent parser with
// precedence climbing for expressions:
//
//	statement   → [WITH cte_list] query | insert | update | delete
//	query       → select_core (UNION [ALL] select_core)*
//	              [ORDER BY order_list] [LIMIT limit]
//	select_core → SELECT [DISTINCT] select_list [FROM from_clause]
//	              [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//
// See each file for the grammar rules of that section.
package parser

import (
	"github.com/queryscope/sqlfront/pkg/sqlerr"
	"github.com/queryscope/sqlfront/pkg/token"
)

// Options configures a parse.
type Options struct {
	// Strict rejects trailing tokens after the statement.
	Strict bool
	// Dialect is an informational label; the grammar is dialect-agnostic.
	Dialect string
}

// Parser parses a token stream into an AST.
type Parser struct {
	tokens []token.Token // filtered stream ending in EOF
	pos    int
	opts   Options
	errors []*sqlerr.Error
}

// Parse parses the SQL and returns the statement AST or a diagnostic.
func Parse(sql string) (Statement, error) {
	return ParseWithOptions(sql, Options{})
}

// ParseWithOptions parses the SQL with explicit options.
func ParseWithOptions(sql string, opts Options) (Statement, error) {
	tokens, err := Tokenize(sql, LexOptions{})
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens, opts: opts}
	stmt := p.parseStatement()
	if len(p.errors) == 0 {
		p.checkTrailing()
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// ---------- Token Helpers ----------

// current returns the token under the cursor.
func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

// nextToken advances the cursor, stopping at EOF.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// rewind moves the cursor back one token. Used at the single backtrack point
// (parenthesized expression vs. subquery in FROM).
func (p *Parser) rewind() {
	if p.pos > 0 {
		p.pos--
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.Type) bool {
	return p.current().Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records a
// diagnostic: UNEXPECTED_END at end of input, UNEXPECTED_TOKEN elsewhere.
func (p *Parser) expect(t token.Type) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.errorExpected(t.String())
	return false
}

// errorExpected records the appropriate diagnostic for a missing construct.
func (p *Parser) errorExpected(expected string) {
	tok := p.current()
	if tok.Type == token.EOF {
		p.addError(sqlerr.EndOfInput(expected, tok.Pos))
		return
	}
	p.addError(sqlerr.Unexpected(expected, tok.Type.String(), tok.Pos))
}

// addError records a diagnostic. The first one recorded is the one returned.
func (p *Parser) addError(err *sqlerr.Error) {
	p.errors = append(p.errors, err)
}

// failed reports whether a diagnostic has been recorded.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// ---------- Statement Dispatch ----------

// parseStatement dispatches on the first significant token.
func (p *Parser) parseStatement() Statement {
	switch p.current().Type {
	case token.EOF:
		// Only EOF at position 0 means empty (or all-trivia) input.
		p.addError(sqlerr.Empty())
		return nil
	case token.WITH:
		return p.parseWithQuery()
	case token.SELECT:
		return p.parseQuery()
	case token.INSERT:
		return p.parseInsert()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	default:
		p.errorExpected("one of WITH, SELECT, INSERT, UPDATE, DELETE")
		return nil
	}
}

// checkTrailing enforces strict-mode rejection of tokens after the
// statement. Non-strict parses tolerate them silently.
func (p *Parser) checkTrailing() {
	if !p.opts.Strict {
		return
	}
	if tok := p.current(); tok.Type != token.EOF {
		p.addError(sqlerr.Syntax("unexpected trailing input after statement", tok.Pos))
	}
}
