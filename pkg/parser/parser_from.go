package parser

import (
	"github.com/queryscope/sqlfront/pkg/token"
)

// FROM clause parsing: table references, derived tables, JOINs.
//
// Grammar:
//
//	from_clause → table_ref (join)* ("," table_ref (join)*)*
//	table_ref   → "(" query ")" [[AS] alias]
//	            | identifier ["." identifier] [[AS] alias]
//	join        → join_type JOIN table_ref [ON expr]
//	join_type   → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS
//
// A "(" not followed by SELECT or WITH is the parser's one backtrack point:
// the cursor rewinds and the table-name path reports the mismatch.

// parseFromClause parses the FROM clause.
func (p *Parser) parseFromClause() *FromClause {
	from := &FromClause{}

	for {
		table := p.parseTableRef()
		if table == nil {
			break
		}
		from.Tables = append(from.Tables, table)

		for {
			join := p.parseJoin()
			if join == nil {
				break
			}
			from.Joins = append(from.Joins, join)
		}

		if p.failed() || !p.match(token.COMMA) {
			break
		}
	}

	return from
}

// parseTableRef parses a derived table or a plain table name. A consumed
// "(" not followed by SELECT or WITH is rewound so the table-name path can
// report it.
func (p *Parser) parseTableRef() *TableRef {
	if p.match(token.LPAREN) {
		if p.check(token.SELECT) || p.check(token.WITH) {
			return p.parseDerivedTable()
		}
		p.rewind()
	}
	return p.parseTableName()
}

// parseDerivedTable parses the query ")" remainder of a derived table, with
// an optional alias. The opening "(" is already consumed.
func (p *Parser) parseDerivedTable() *TableRef {
	table := &TableRef{Subquery: p.parseStatement()}
	p.expect(token.RPAREN)
	table.Alias = p.parseTableAlias()
	return table
}

// parseTableName parses identifier["." identifier] with an optional alias.
// Two-part names are schema.table.
func (p *Parser) parseTableName() *TableRef {
	if !p.check(token.IDENT) {
		p.errorExpected("table name")
		return nil
	}
	table := &TableRef{Name: p.current().Literal}
	p.nextToken()

	if p.match(token.DOT) {
		if !p.check(token.IDENT) {
			p.errorExpected("table name")
			return table
		}
		table.Schema = table.Name
		table.Name = p.current().Literal
		p.nextToken()
	}

	table.Alias = p.parseTableAlias()
	return table
}

// parseTableAlias parses [AS] alias after a table reference. An implicit
// alias must be a plain identifier so clause keywords stay untouched.
func (p *Parser) parseTableAlias() string {
	if p.match(token.AS) {
		if !token.IsAliasable(p.current().Type) {
			p.errorExpected("alias")
			return ""
		}
		alias := p.current().Literal
		p.nextToken()
		return alias
	}

	if p.check(token.IDENT) {
		alias := p.current().Literal
		p.nextToken()
		return alias
	}
	return ""
}

// parseJoin parses one join, or returns nil when no join prefix is present.
func (p *Parser) parseJoin() *Join {
	if p.failed() {
		return nil
	}

	join := &Join{}

	switch p.current().Type {
	case token.INNER:
		p.nextToken()
		join.Type = JoinInner
	case token.LEFT:
		p.nextToken()
		join.Type = JoinLeft
		if p.match(token.OUTER) {
			join.Type = JoinLeftOuter
		}
	case token.RIGHT:
		p.nextToken()
		join.Type = JoinRight
		if p.match(token.OUTER) {
			join.Type = JoinRightOuter
		}
	case token.FULL:
		p.nextToken()
		join.Type = JoinFull
		if p.match(token.OUTER) {
			join.Type = JoinFullOuter
		}
	case token.CROSS:
		p.nextToken()
		join.Type = JoinCross
	case token.JOIN:
		join.Type = JoinInner
	default:
		return nil
	}

	if !p.expect(token.JOIN) {
		return nil
	}

	join.Table = p.parseTableRef()

	// CROSS JOIN carries no ON condition; every other kind requires one.
	if join.Type != JoinCross {
		if !p.expect(token.ON) {
			return join
		}
		join.Condition = p.parseExpression()
	}

	return join
}
