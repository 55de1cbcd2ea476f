package parser

import (
	"github.com/queryscope/sqlfront/pkg/token"
)

// DML statement parsing.
//
// Grammar:
//
//	insert → INSERT INTO table_ref ["(" column_list ")"]
//	         VALUES value_row ("," value_row)*
//	update → UPDATE table_ref SET assignment ("," assignment)* [WHERE expr]
//	delete → DELETE FROM table_ref [WHERE expr]
//	value_row  → "(" expr_list ")"
//	assignment → identifier "=" expr

// parseInsert parses INSERT INTO ... VALUES.
func (p *Parser) parseInsert() Statement {
	p.expect(token.INSERT)
	p.expect(token.INTO)

	stmt := &InsertStmt{Table: p.parseTableName()}

	// Optional column list
	if p.match(token.LPAREN) {
		for {
			if !p.check(token.IDENT) {
				p.errorExpected("column name")
				break
			}
			stmt.Columns = append(stmt.Columns, p.current().Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}

	p.expect(token.VALUES)

	for {
		row := p.parseValueRow()
		if row == nil {
			break
		}
		stmt.Values = append(stmt.Values, row)
		if !p.match(token.COMMA) {
			break
		}
	}

	return stmt
}

// parseValueRow parses one parenthesized value list.
func (p *Parser) parseValueRow() *ValuesList {
	if !p.expect(token.LPAREN) {
		return nil
	}
	row := &ValuesList{Values: p.parseExpressionList()}
	p.expect(token.RPAREN)
	return row
}

// parseUpdate parses UPDATE ... SET ... [WHERE].
func (p *Parser) parseUpdate() Statement {
	p.expect(token.UPDATE)

	stmt := &UpdateStmt{Table: p.parseTableName()}

	p.expect(token.SET)

	for {
		assign := p.parseAssignment()
		if assign == nil {
			break
		}
		stmt.Assignments = append(stmt.Assignments, assign)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	return stmt
}

// parseAssignment parses column = expr.
func (p *Parser) parseAssignment() *Assignment {
	if !p.check(token.IDENT) {
		p.errorExpected("column name")
		return nil
	}
	assign := &Assignment{Column: p.current().Literal}
	p.nextToken()

	if !p.expect(token.EQ) {
		return assign
	}
	assign.Value = p.parseExpression()
	return assign
}

// parseDelete parses DELETE FROM ... [WHERE].
func (p *Parser) parseDelete() Statement {
	p.expect(token.DELETE)
	p.expect(token.FROM)

	stmt := &DeleteStmt{Table: p.parseTableName()}

	if p.match(token.WHERE) {
		stmt.Where = p.parseExpression()
	}

	return stmt
}
