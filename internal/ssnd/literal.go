package ssnd

import (
	"fmt"
	"strconv"
	"strings"
)

// The generator writes values in Python literal syntax: integers, floats,
// parenthesized tuples nested at most one level (arcs), and bracketed lists
// of tuples. decodeLiteral parses that subset into a small generic tree which
// the typed coercion helpers below flatten into domain values.

type litKind int

const (
	litInt litKind = iota
	litFloat
	litSeq // tuple or list; the distinction never matters downstream
)

type literal struct {
	kind  litKind
	i     int
	f     float64
	items []literal
}

type litScanner struct {
	src string
	pos int
}

// decodeLiteral parses a complete token. A bare comma-separated sequence at
// the top level is a tuple, matching "(1,2),(3,4)" as written by the
// generator for RevenueRange.
func decodeLiteral(token string) (literal, error) {
	s := &litScanner{src: token}
	v, err := s.parseExpr()
	if err != nil {
		return literal{}, err
	}
	s.skipSpace()
	if s.pos != len(s.src) {
		return literal{}, newLiteralError(token, fmt.Sprintf("trailing input at offset %d", s.pos))
	}
	return v, nil
}

// parseExpr parses one value, or a comma-joined sequence of values.
func (s *litScanner) parseExpr() (literal, error) {
	first, err := s.parseValue()
	if err != nil {
		return literal{}, err
	}
	s.skipSpace()
	if !s.peekIs(',') {
		return first, nil
	}
	seq := literal{kind: litSeq, items: []literal{first}}
	for s.peekIs(',') {
		s.pos++
		s.skipSpace()
		if s.pos == len(s.src) {
			break // trailing comma
		}
		v, err := s.parseValue()
		if err != nil {
			return literal{}, err
		}
		seq.items = append(seq.items, v)
		s.skipSpace()
	}
	return seq, nil
}

func (s *litScanner) parseValue() (literal, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return literal{}, newLiteralError(s.src, "unexpected end of input")
	}
	switch s.src[s.pos] {
	case '(':
		return s.parseSeq('(', ')')
	case '[':
		return s.parseSeq('[', ']')
	default:
		return s.parseNumber()
	}
}

func (s *litScanner) parseSeq(open, close byte) (literal, error) {
	s.pos++ // consume open
	seq := literal{kind: litSeq}
	sawComma := false
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return literal{}, newLiteralError(s.src, fmt.Sprintf("missing closing %q", string(close)))
		}
		if s.src[s.pos] == close {
			s.pos++
			// A single parenthesized value without a comma is just that
			// value, as in Python: "(5)" is 5, "(5,)" is a one-tuple.
			if close == ')' && len(seq.items) == 1 && !sawComma {
				return seq.items[0], nil
			}
			return seq, nil
		}
		v, err := s.parseValue()
		if err != nil {
			return literal{}, err
		}
		seq.items = append(seq.items, v)
		s.skipSpace()
		if s.pos < len(s.src) && s.src[s.pos] == ',' {
			sawComma = true
			s.pos++
		} else if s.pos < len(s.src) && s.src[s.pos] != close {
			return literal{}, newLiteralError(s.src, fmt.Sprintf("expected %q or %q at offset %d", ",", string(close), s.pos))
		}
	}
}

func (s *litScanner) parseNumber() (literal, error) {
	start := s.pos
	if s.peekIs('+') || s.peekIs('-') {
		s.pos++
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' {
			s.pos++
			continue
		}
		if (c == '+' || c == '-') && s.pos > start && (s.src[s.pos-1] == 'e' || s.src[s.pos-1] == 'E') {
			s.pos++
			continue
		}
		break
	}
	tok := s.src[start:s.pos]
	if tok == "" || tok == "+" || tok == "-" {
		return literal{}, newLiteralError(s.src, fmt.Sprintf("expected a number at offset %d", start))
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return literal{kind: litInt, i: n}, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return literal{}, newLiteralError(s.src, fmt.Sprintf("not a number: %q", tok))
	}
	return literal{kind: litFloat, f: f}, nil
}

func (s *litScanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *litScanner) peekIs(c byte) bool {
	return s.pos < len(s.src) && s.src[s.pos] == c
}

// --- typed coercions ---

func (v literal) asInt() (int, error) {
	if v.kind != litInt {
		return 0, fmt.Errorf("expected an integer")
	}
	return v.i, nil
}

func (v literal) asSeq(n int) ([]literal, error) {
	if v.kind != litSeq {
		return nil, fmt.Errorf("expected a sequence")
	}
	if n >= 0 && len(v.items) != n {
		return nil, fmt.Errorf("expected %d elements, got %d", n, len(v.items))
	}
	return v.items, nil
}

func (v literal) asIntPair() (int, int, error) {
	items, err := v.asSeq(2)
	if err != nil {
		return 0, 0, err
	}
	a, err := items[0].asInt()
	if err != nil {
		return 0, 0, err
	}
	b, err := items[1].asInt()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (v literal) asTimeNode() (TimeNode, error) {
	n, t, err := v.asIntPair()
	if err != nil {
		return TimeNode{}, err
	}
	return TimeNode{Node: n, Time: t}, nil
}

func (v literal) asArc() (Arc, error) {
	items, err := v.asSeq(2)
	if err != nil {
		return Arc{}, err
	}
	from, err := items[0].asTimeNode()
	if err != nil {
		return Arc{}, err
	}
	to, err := items[1].asTimeNode()
	if err != nil {
		return Arc{}, err
	}
	return Arc{From: from, To: to}, nil
}

// parseIntListToken decodes e.g. "[0, 1, 2]".
func parseIntListToken(token string) ([]int, error) {
	v, err := decodeLiteral(token)
	if err != nil {
		return nil, err
	}
	items, err := v.asSeq(-1)
	if err != nil {
		return nil, newLiteralError(token, err.Error())
	}
	out := make([]int, 0, len(items))
	for _, it := range items {
		n, err := it.asInt()
		if err != nil {
			return nil, newLiteralError(token, err.Error())
		}
		out = append(out, n)
	}
	return out, nil
}

// parseIntPairToken decodes e.g. "(1,10)".
func parseIntPairToken(token string) (int, int, error) {
	v, err := decodeLiteral(token)
	if err != nil {
		return 0, 0, err
	}
	a, b, err := v.asIntPair()
	if err != nil {
		return 0, 0, newLiteralError(token, err.Error())
	}
	return a, b, nil
}

// parseRangePairToken decodes e.g. "((1,2),(3,4))" or the unparenthesized
// "(1,2),(3,4)" form.
func parseRangePairToken(token string) ([2]IntRange, error) {
	var out [2]IntRange
	v, err := decodeLiteral(token)
	if err != nil {
		return out, err
	}
	items, err := v.asSeq(2)
	if err != nil {
		return out, newLiteralError(token, err.Error())
	}
	for i, it := range items {
		lo, hi, err := it.asIntPair()
		if err != nil {
			return out, newLiteralError(token, err.Error())
		}
		out[i] = IntRange{Lo: lo, Hi: hi}
	}
	return out, nil
}

// parseNodePairListToken decodes e.g. "[(1,2),(2,3)]".
func parseNodePairListToken(token string) ([]NodePair, error) {
	v, err := decodeLiteral(token)
	if err != nil {
		return nil, err
	}
	items, err := v.asSeq(-1)
	if err != nil {
		return nil, newLiteralError(token, err.Error())
	}
	out := make([]NodePair, 0, len(items))
	for _, it := range items {
		a, b, err := it.asIntPair()
		if err != nil {
			return nil, newLiteralError(token, err.Error())
		}
		out = append(out, NodePair{From: a, To: b})
	}
	return out, nil
}

// parseTimeNodeToken decodes e.g. "(2,1)".
func parseTimeNodeToken(token string) (TimeNode, error) {
	v, err := decodeLiteral(token)
	if err != nil {
		return TimeNode{}, err
	}
	tn, err := v.asTimeNode()
	if err != nil {
		return TimeNode{}, newLiteralError(token, err.Error())
	}
	return tn, nil
}

// parseArcToken decodes e.g. "((1,0),(2,1))".
func parseArcToken(token string) (Arc, error) {
	v, err := decodeLiteral(token)
	if err != nil {
		return Arc{}, err
	}
	a, err := v.asArc()
	if err != nil {
		return Arc{}, newLiteralError(token, err.Error())
	}
	return a, nil
}

// parseArcListToken decodes e.g. "[((1,0),(2,1)),((2,1),(3,2))]". An empty
// token is an empty list; the generator writes nothing for time nodes with
// no adjacent arcs.
func parseArcListToken(token string) ([]Arc, error) {
	if strings.TrimSpace(token) == "" {
		return []Arc{}, nil
	}
	v, err := decodeLiteral(token)
	if err != nil {
		return nil, err
	}
	items, err := v.asSeq(-1)
	if err != nil {
		return nil, newLiteralError(token, err.Error())
	}
	out := make([]Arc, 0, len(items))
	for _, it := range items {
		a, err := it.asArc()
		if err != nil {
			return nil, newLiteralError(token, err.Error())
		}
		out = append(out, a)
	}
	return out, nil
}
