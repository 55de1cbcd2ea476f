package parser

import (
	"strings"

	"github.com/queryscope/sqlfront/pkg/token"
)

// Expression parsing using precedence climbing.
//
// Precedence levels, lowest to highest:
//
//	1  OR
//	2  AND
//	3  =, !=, <>
//	4  <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN, IS (left-associative, shared)
//	5  +, -
//	6  *, /, %, ||
//	7  unary NOT, -, +, EXISTS
//	8  primary
//
// LIKE/IN/BETWEEN/IS sit on the relational level and chain left-associatively,
// mirroring the grammar this parser descends from; chains like a < b LIKE c
// parse rather than error.

const (
	precNone = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
)

// parseExpression parses a full expression.
func (p *Parser) parseExpression() Expr {
	return p.parseExprPrec(precOr)
}

// parseExprPrec climbs while the current infix operator binds at least as
// tightly as min.
func (p *Parser) parseExprPrec(min int) Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for {
		prec := infixPrecedence(p.current().Type)
		if prec < min {
			return left
		}
		left = p.parseInfix(left, prec)
		if left == nil {
			return nil
		}
	}
}

// parsePrefix parses unary operators and primary expressions.
func (p *Parser) parsePrefix() Expr {
	switch p.current().Type {
	case token.NOT:
		p.nextToken()
		return &UnaryExpr{Op: "NOT", Expr: p.parseExprPrec(precUnary)}
	case token.MINUS:
		p.nextToken()
		return &UnaryExpr{Op: "-", Expr: p.parseExprPrec(precUnary)}
	case token.PLUS:
		p.nextToken()
		return &UnaryExpr{Op: "+", Expr: p.parseExprPrec(precUnary)}
	case token.EXISTS:
		p.nextToken()
		return &UnaryExpr{Op: "EXISTS", Expr: p.parseSubquery()}
	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the binding power of t as an infix operator, or
// precNone when t is not one. Infix NOT covers NOT IN / NOT BETWEEN /
// NOT LIKE.
func infixPrecedence(t token.Type) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE:
		return precEquality
	case token.LT, token.GT, token.LE, token.GE,
		token.LIKE, token.ILIKE, token.IN, token.BETWEEN, token.IS, token.NOT:
		return precRelational
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT, token.DPIPE:
		return precMultiplicative
	default:
		return precNone
	}
}

// parseInfix parses one infix operation with left already consumed.
func (p *Parser) parseInfix(left Expr, prec int) Expr {
	tok := p.current()

	switch tok.Type {
	case token.IN:
		p.nextToken()
		return p.parseInRHS(left, "IN")

	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenRHS(left, "BETWEEN")

	case token.IS:
		return p.parseIsExpr(left)

	case token.NOT:
		return p.parseNotInfix(left)

	case token.LIKE, token.ILIKE:
		p.nextToken()
		return &BinaryExpr{Left: left, Op: tok.Type.String(), Right: p.parseExprPrec(prec + 1)}

	case token.OR, token.AND:
		p.nextToken()
		return &BinaryExpr{Left: left, Op: tok.Type.String(), Right: p.parseExprPrec(prec + 1)}

	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		p.nextToken()
		// ANY/ALL quantifiers follow comparison operators only.
		if p.check(token.ANY) || p.check(token.ALL) {
			return p.parseQuantified(left, tok.Literal)
		}
		return &BinaryExpr{Left: left, Op: tok.Literal, Right: p.parseExprPrec(prec + 1)}

	default:
		p.nextToken()
		return &BinaryExpr{Left: left, Op: tok.Literal, Right: p.parseExprPrec(prec + 1)}
	}
}

// parseNotInfix handles NOT as an infix modifier: NOT IN, NOT BETWEEN,
// NOT LIKE, NOT ILIKE.
func (p *Parser) parseNotInfix(left Expr) Expr {
	p.nextToken() // consume NOT

	switch p.current().Type {
	case token.IN:
		p.nextToken()
		return p.parseInRHS(left, "NOT IN")
	case token.BETWEEN:
		p.nextToken()
		return p.parseBetweenRHS(left, "NOT BETWEEN")
	case token.LIKE, token.ILIKE:
		op := "NOT " + p.current().Type.String()
		p.nextToken()
		return &BinaryExpr{Left: left, Op: op, Right: p.parseExprPrec(precRelational + 1)}
	default:
		p.errorExpected("IN, BETWEEN, LIKE, or ILIKE")
		return left
	}
}

// parseInRHS parses the right-hand side of IN: a parenthesized subquery or a
// value list.
func (p *Parser) parseInRHS(left Expr, op string) Expr {
	if !p.expect(token.LPAREN) {
		return left
	}

	if p.check(token.SELECT) || p.check(token.WITH) {
		sub := &SubqueryExpr{Query: p.parseStatement()}
		p.expect(token.RPAREN)
		return &BinaryExpr{Left: left, Op: op, Right: sub}
	}

	values := &ValuesList{Values: p.parseExpressionList()}
	p.expect(token.RPAREN)
	return &BinaryExpr{Left: left, Op: op, Right: values}
}

// parseBetweenRHS parses low AND high. Both bounds parse at additive
// precedence so the AND separator is not captured.
func (p *Parser) parseBetweenRHS(left Expr, op string) Expr {
	rng := &BetweenRange{}
	rng.Low = p.parseExprPrec(precAdditive)
	p.expect(token.AND)
	rng.High = p.parseExprPrec(precAdditive)
	return &BinaryExpr{Left: left, Op: op, Right: rng}
}

// parseIsExpr parses IS [NOT] NULL. Any other token after IS [NOT] is an
// error.
func (p *Parser) parseIsExpr(left Expr) Expr {
	p.nextToken() // consume IS

	op := "IS"
	if p.match(token.NOT) {
		op = "IS NOT"
	}

	if !p.expect(token.NULL) {
		return left
	}
	return &BinaryExpr{Left: left, Op: op, Right: &Literal{Type: LiteralNull, Value: "null"}}
}

// parseQuantified parses ANY/ALL after a comparison operator. The right-hand
// side must be a parenthesized subquery.
func (p *Parser) parseQuantified(left Expr, op string) Expr {
	quantifier := strings.ToUpper(p.current().Literal)
	p.nextToken()

	sub := p.parseSubquery()
	return &BinaryExpr{Left: left, Op: op + " " + quantifier, Right: sub}
}

// parseSubquery parses a required parenthesized query.
func (p *Parser) parseSubquery() Expr {
	if !p.expect(token.LPAREN) {
		return nil
	}
	if !p.check(token.SELECT) && !p.check(token.WITH) {
		p.errorExpected("SELECT")
		return nil
	}
	sub := &SubqueryExpr{Query: p.parseStatement()}
	p.expect(token.RPAREN)
	return sub
}
