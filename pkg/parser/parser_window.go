package parser

import (
	"github.com/queryscope/sqlfront/pkg/token"
)

// Window specification parsing: OVER clauses, PARTITION BY, ORDER BY, frames.
//
// Grammar:
//
//	window_spec  → "(" [PARTITION BY expr_list] [ORDER BY order_list] [frame] ")"
//	frame        → (ROWS|RANGE) (BETWEEN frame_bound AND frame_bound | frame_bound)
//	frame_bound  → UNBOUNDED (PRECEDING|FOLLOWING)
//	             | CURRENT ROW
//	             | INTERVAL primary [unit] (PRECEDING|FOLLOWING)
//	             | expr (PRECEDING|FOLLOWING)

// parseWindowSpec parses the parenthesized OVER specification.
func (p *Parser) parseWindowSpec() *WindowSpec {
	spec := &WindowSpec{}

	p.expect(token.LPAREN)

	if p.match(token.PARTITION) {
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	if p.match(token.ORDER) {
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}

	if p.check(token.ROWS) || p.check(token.RANGE) {
		spec.Frame = p.parseFrameSpec()
	}

	p.expect(token.RPAREN)
	return spec
}

// parseFrameSpec parses a ROWS or RANGE frame with one or two bounds.
func (p *Parser) parseFrameSpec() *FrameSpec {
	frame := &FrameSpec{}

	if p.match(token.ROWS) {
		frame.Type = FrameRows
	} else if p.match(token.RANGE) {
		frame.Type = FrameRange
	}

	if p.match(token.BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		frame.End = p.parseFrameBound()
	} else {
		frame.Start = p.parseFrameBound()
	}

	return frame
}

// parseFrameBound parses a single frame bound.
func (p *Parser) parseFrameBound() *FrameBound {
	bound := &FrameBound{}

	switch {
	case p.match(token.UNBOUNDED):
		if p.match(token.PRECEDING) {
			bound.Type = BoundUnboundedPreceding
		} else if p.match(token.FOLLOWING) {
			bound.Type = BoundUnboundedFollowing
		} else {
			p.errorExpected("PRECEDING or FOLLOWING")
		}

	case p.match(token.CURRENT):
		p.expect(token.ROW)
		bound.Type = BoundCurrentRow

	case p.check(token.INTERVAL):
		interval, _ := p.parseIntervalExpr().(*IntervalExpr)
		bound.Type = BoundInterval
		bound.Interval = interval
		bound.Direction = p.parseBoundDirection()

	default:
		bound.Type = BoundOffset
		bound.Offset = p.parseExprPrec(precAdditive)
		bound.Direction = p.parseBoundDirection()
	}

	return bound
}

// parseBoundDirection parses the required PRECEDING or FOLLOWING suffix of
// an offset or interval bound.
func (p *Parser) parseBoundDirection() string {
	switch {
	case p.match(token.PRECEDING):
		return "PRECEDING"
	case p.match(token.FOLLOWING):
		return "FOLLOWING"
	default:
		p.errorExpected("PRECEDING or FOLLOWING")
		return ""
	}
}
