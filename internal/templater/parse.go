package templater

import (
	"strings"
	"unicode"
)

// stmt is a decoded {* statement *} token.
type stmt struct {
	kind stmtKind
	expr string
	vars []string
	tok  lexToken
}

func parseStmt(tok lexToken) (*stmt, error) {
	body := strings.TrimSpace(strings.TrimSuffix(tok.Value, ":"))
	keyword, rest, _ := strings.Cut(body, " ")
	rest = strings.TrimSpace(rest)
	s := &stmt{tok: tok}

	switch keyword {
	case "for":
		s.kind = stmtFor
		vars, iter, ok := strings.Cut(rest, " in ")
		if !ok || strings.TrimSpace(iter) == "" {
			return nil, newError(KindSyntax, tok.Pos, "invalid for statement %q: expected 'for x in items'", tok.Value)
		}
		for _, v := range strings.Split(vars, ",") {
			v = strings.TrimSpace(v)
			if !isIdent(v) {
				return nil, newError(KindSyntax, tok.Pos, "invalid loop variable %q", v)
			}
			s.vars = append(s.vars, v)
		}
		s.expr = strings.TrimSpace(iter)
	case "if", "elif":
		s.kind = stmtIf
		if keyword == "elif" {
			s.kind = stmtElif
		}
		if rest == "" {
			return nil, newError(KindSyntax, tok.Pos, "%s statement needs a condition", keyword)
		}
		s.expr = rest
	case "else", "endif", "endfor":
		if rest != "" {
			return nil, newError(KindSyntax, tok.Pos, "unexpected %q after %s", rest, keyword)
		}
		switch keyword {
		case "else":
			s.kind = stmtElse
		case "endif":
			s.kind = stmtEndIf
		default:
			s.kind = stmtEndFor
		}
	default:
		return nil, newError(KindSyntax, tok.Pos, "unknown statement %q", tok.Value)
	}
	return s, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// parser builds blocks out of the flat token stream.
type parser struct {
	toks []lexToken
	i    int
}

func parse(toks []lexToken) ([]node, error) {
	p := &parser{toks: toks}
	nodes, term, err := p.nodes()
	if err != nil {
		return nil, err
	}
	if term != nil {
		return nil, unmatched(term.tok.Pos, term.kind)
	}
	return nodes, nil
}

// nodes parses until EOF or a statement that closes or continues an
// enclosing block, which is returned unconsumed by any node.
func (p *parser) nodes() ([]node, *stmt, error) {
	var out []node
	for {
		tok := p.toks[p.i]
		p.i++
		switch tok.Type {
		case tokenEOF:
			return out, nil, nil
		case tokenText:
			out = append(out, &textNode{span: span{tok.Start, tok.End}, Text: tok.Value})
		case tokenExpr:
			if tok.Value == "" {
				return nil, nil, newError(KindSyntax, tok.Pos, "empty expression")
			}
			out = append(out, &exprNode{span: span{tok.Start, tok.End}, Expr: tok.Value, Pos: tok.Pos})
		case tokenComment:
			out = append(out, &commentNode{span: span{tok.Start, tok.End}})
		case tokenStmt:
			s, err := parseStmt(tok)
			if err != nil {
				return nil, nil, err
			}
			switch s.kind {
			case stmtFor:
				n, err := p.forBlock(s)
				if err != nil {
					return nil, nil, err
				}
				out = append(out, n)
			case stmtIf:
				n, err := p.ifBlock(s)
				if err != nil {
					return nil, nil, err
				}
				out = append(out, n)
			default:
				return out, s, nil
			}
		}
	}
}

func (p *parser) forBlock(open *stmt) (*forBlock, error) {
	body, term, err := p.nodes()
	if err != nil {
		return nil, err
	}
	if term == nil {
		return nil, unmatched(open.tok.Pos, stmtFor)
	}
	if term.kind != stmtEndFor {
		return nil, unmatched(term.tok.Pos, term.kind)
	}
	return &forBlock{
		span: span{open.tok.Start, term.tok.End},
		Vars: open.vars,
		Iter: open.expr,
		Body: body,
		Pos:  open.tok.Pos,
	}, nil
}

func (p *parser) ifBlock(open *stmt) (*ifBlock, error) {
	b := &ifBlock{}
	cur := open
	for {
		body, term, err := p.nodes()
		if err != nil {
			return nil, err
		}
		b.Branches = append(b.Branches, branch{
			Tag:    span{cur.tok.Start, cur.tok.End},
			Cond:   cur.expr,
			IsElse: cur.kind == stmtElse,
			Body:   body,
			Pos:    cur.tok.Pos,
		})
		if term == nil {
			return nil, unmatched(open.tok.Pos, stmtIf)
		}
		switch term.kind {
		case stmtEndIf:
			b.EndTag = span{term.tok.Start, term.tok.End}
			b.span = span{open.tok.Start, term.tok.End}
			return b, nil
		case stmtElif, stmtElse:
			if cur.kind == stmtElse {
				return nil, newError(KindBlock, term.tok.Pos, "'%s' after 'else'", term.kind)
			}
			cur = term
		default:
			return nil, unmatched(term.tok.Pos, term.kind)
		}
	}
}
