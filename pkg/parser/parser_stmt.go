package parser

import (
	"github.com/queryscope/sqlfront/pkg/token"
)

// Statement parsing: WITH clause, CTEs, UNION chaining, SELECT body,
// SELECT list, ORDER BY, LIMIT.
//
// Grammar:
//
//	with_query  → WITH [RECURSIVE] cte ("," cte)* query
//	cte         → identifier ["(" column_list ")"] AS "(" statement ")"
//	query       → union_chain [ORDER BY order_list] [LIMIT limit]
//	union_chain → select_core (UNION [ALL] union_chain)?
//	select_core → SELECT [DISTINCT] select_list [FROM from_clause]
//	              [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	select_item → "*" | expr [[AS] alias]
//	order_item  → expr [ASC|DESC]
//	limit       → expr [OFFSET expr | "," expr]
//
// ORDER BY and LIMIT belong to the outermost node of a UNION chain; inner
// selects never carry them.

// parseWithQuery parses a WITH clause and the query it prefixes. The clause
// attaches to the outermost resulting statement.
func (p *Parser) parseWithQuery() Statement {
	with := p.parseWithClause()

	if !p.check(token.SELECT) {
		p.errorExpected("SELECT")
		return nil
	}

	stmt := p.parseQuery()
	switch s := stmt.(type) {
	case *SelectStmt:
		s.With = with
	case *UnionStmt:
		s.With = with
	}
	return stmt
}

// parseWithClause parses WITH [RECURSIVE] cte, cte, ...
func (p *Parser) parseWithClause() *WithClause {
	p.expect(token.WITH)
	with := &WithClause{}

	with.Recursive = p.match(token.RECURSIVE)

	for {
		cte := p.parseCTE()
		if cte == nil {
			break
		}
		with.CTEs = append(with.CTEs, cte)

		if !p.match(token.COMMA) {
			break
		}
	}

	return with
}

// parseCTE parses one CTE: name ["(" columns ")"] AS "(" query ")".
func (p *Parser) parseCTE() *CTE {
	if !p.check(token.IDENT) {
		p.errorExpected("CTE name")
		return nil
	}
	cte := &CTE{Name: p.current().Literal}
	p.nextToken()

	// Optional column-name list
	if p.match(token.LPAREN) {
		for {
			if !p.check(token.IDENT) {
				p.errorExpected("column name")
				break
			}
			cte.Columns = append(cte.Columns, p.current().Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	p.expect(token.AS)
	p.expect(token.LPAREN)
	cte.Query = p.parseStatement()
	p.expect(token.RPAREN)

	return cte
}

// parseQuery parses a UNION-capable query with optional trailing ORDER BY
// and LIMIT attached to the outermost node.
func (p *Parser) parseQuery() Statement {
	stmt := p.parseUnionChain()

	var orderBy []OrderByItem
	var limit *LimitClause
	if p.match(token.ORDER) {
		p.expect(token.BY)
		orderBy = p.parseOrderByList()
	}
	if p.match(token.LIMIT) {
		limit = p.parseLimitClause()
	}

	switch s := stmt.(type) {
	case *SelectStmt:
		s.OrderBy = orderBy
		s.Limit = limit
	case *UnionStmt:
		s.OrderBy = orderBy
		s.Limit = limit
	}
	return stmt
}

// parseUnionChain parses select_core (UNION [ALL] union_chain)?. The chain
// is right-associative.
func (p *Parser) parseUnionChain() Statement {
	left := p.parseSelectCore()

	if !p.check(token.UNION) {
		return left
	}
	p.nextToken()
	all := p.match(token.ALL)
	right := p.parseUnionChain()

	return &UnionStmt{Left: left, Right: right, All: all}
}

// parseSelectCore parses a single SELECT without ORDER BY or LIMIT.
func (p *Parser) parseSelectCore() *SelectStmt {
	p.expect(token.SELECT)
	stmt := &SelectStmt{}

	stmt.Distinct = p.match(token.DISTINCT)
	stmt.Columns = p.parseSelectList()

	if p.match(token.FROM) {
		stmt.From = p.parseFromClause()
	}
	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}
	if p.match(token.GROUP) {
		p.expect(token.BY)
		stmt.GroupBy = p.parseExpressionList()
	}
	if p.match(token.HAVING) {
		stmt.Having = p.parseExpression()
	}

	return stmt
}

// parseSelectList parses the comma-separated SELECT items.
func (p *Parser) parseSelectList() []SelectItem {
	var items []SelectItem

	for {
		items = append(items, p.parseSelectItem())
		if p.failed() || !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseSelectItem parses "*" or an expression with an optional alias.
func (p *Parser) parseSelectItem() SelectItem {
	item := SelectItem{}

	if p.check(token.STAR) {
		item.Star = true
		p.nextToken()
		return item
	}

	item.Expr = p.parseExpression()
	item.Alias = p.parseAlias()
	return item
}

// parseAlias parses [AS] alias where the alias is an identifier or an
// aliasable keyword (date parts, common function names). With AS present a
// non-aliasable token is an error; without AS the alias is simply absent.
func (p *Parser) parseAlias() string {
	if p.match(token.AS) {
		if !token.IsAliasable(p.current().Type) {
			p.errorExpected("alias")
			return ""
		}
		alias := p.current().Literal
		p.nextToken()
		return alias
	}

	if token.IsAliasable(p.current().Type) {
		alias := p.current().Literal
		p.nextToken()
		return alias
	}
	return ""
}

// parseOrderByList parses a comma-separated ORDER BY list.
func (p *Parser) parseOrderByList() []OrderByItem {
	var items []OrderByItem

	for {
		item := OrderByItem{Expr: p.parseExpression()}
		if p.match(token.ASC) {
			item.Desc = false
		} else if p.match(token.DESC) {
			item.Desc = true
		}
		items = append(items, item)

		if p.failed() || !p.match(token.COMMA) {
			break
		}
	}

	return items
}

// parseLimitClause parses LIMIT count [OFFSET offset] and the comma form
// LIMIT offset, count.
func (p *Parser) parseLimitClause() *LimitClause {
	limit := &LimitClause{Count: p.parseExpression()}

	if p.match(token.OFFSET) {
		limit.Offset = p.parseExpression()
	} else if p.match(token.COMMA) {
		limit.Offset = limit.Count
		limit.Count = p.parseExpression()
	}

	return limit
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []Expr {
	var exprs []Expr

	for {
		exprs = append(exprs, p.parseExpression())
		if p.failed() || !p.match(token.COMMA) {
			break
		}
	}

	return exprs
}
