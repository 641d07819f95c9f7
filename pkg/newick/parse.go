package newick

import (
	"strconv"
	"strings"
)

const delimiters = "(),:;[]"

type parser struct {
	s   string
	pos int
	t   *Tree
}

// Parse reads the first tree from the input.
func Parse(s string) (*Tree, error) {
	p := &parser{s: s}
	p.skipSpace()
	if p.eof() {
		return nil, ParseError(p.pos, "empty input")
	}
	return p.tree()
}

// ParseAll reads every tree from the input. Trees are terminated by ';'.
func ParseAll(s string) ([]*Tree, error) {
	var res []*Tree
	p := &parser{s: s}
	for {
		p.skipSpace()
		if p.eof() {
			return res, nil
		}
		t, err := p.tree()
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
}

func (p *parser) tree() (*Tree, error) {
	p.t = &Tree{}
	p.t.root = p.t.NewNode()
	if err := p.subtree(p.t.root); err != nil {
		return nil, err
	}
	p.skipSpace()
	switch {
	case p.eof():
	case p.peek() == ';':
		p.pos++
	default:
		return nil, ParseError(p.pos, "expected ';'")
	}
	return p.t, nil
}

func (p *parser) subtree(id NodeID) error {
	p.skipSpace()
	if !p.eof() && p.peek() == '(' {
		p.pos++
		for {
			child := p.t.AddChild(id)
			if err := p.subtree(child); err != nil {
				return err
			}
			p.skipSpace()
			if p.eof() {
				return ParseError(p.pos, "unbalanced parentheses")
			}
			c := p.peek()
			p.pos++
			if c == ')' {
				break
			}
			if c != ',' {
				return ParseError(p.pos-1, "expected ',' or ')'")
			}
		}
	}
	return p.label(id)
}

// label reads name, comment and branch length. Comment and length are
// accepted in any order.
func (p *parser) label(id NodeID) error {
	n := p.t.nodes[id]
	p.skipSpace()

	if !p.eof() && p.peek() == '\'' {
		name, err := p.quoted()
		if err != nil {
			return err
		}
		n.Name = name
	} else {
		start := p.pos
		for !p.eof() && !strings.ContainsRune(delimiters, rune(p.peek())) {
			p.pos++
		}
		n.Name = strings.TrimSpace(p.s[start:p.pos])
	}

	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		switch p.peek() {
		case '[':
			start := p.pos
			end := strings.IndexByte(p.s[p.pos:], ']')
			if end < 0 {
				return ParseError(start, "unterminated comment")
			}
			c := p.s[p.pos+1 : p.pos+end]
			p.pos += end + 1
			if n.Comment != "" {
				n.Comment += ":"
			}
			n.Comment += c
		case ':':
			p.pos++
			p.skipSpace()
			start := p.pos
			for !p.eof() && !strings.ContainsRune(delimiters, rune(p.peek())) &&
				!isSpace(p.peek()) {
				p.pos++
			}
			l, err := strconv.ParseFloat(p.s[start:p.pos], 64)
			if err != nil {
				return ParseError(start, "bad branch length")
			}
			n.SetLength(l)
		case ']':
			return ParseError(p.pos, "unexpected ']'")
		default:
			return nil
		}
	}
}

func (p *parser) quoted() (string, error) {
	start := p.pos
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		p.pos++
		if c != '\'' {
			sb.WriteByte(c)
			continue
		}
		// doubled quote stands for a literal quote
		if !p.eof() && p.peek() == '\'' {
			sb.WriteByte('\'')
			p.pos++
			continue
		}
		return sb.String(), nil
	}
	return "", ParseError(start, "unterminated quoted name")
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte { return p.s[p.pos] }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
