// Package parser matches lexed segments against a dialect grammar and builds
// the lossless segment tree.
//
// # Usage
//
//	reg := dialects.NewRegistry()
//	d, err := reg.Get("duckdb")
//	res, err := parser.ParseString(ctx, "select * from t qualify x = 1", d)
//	fmt.Print(segment.Dump(res.Tree))
//
// # Matching
//
// Grammar nodes are matched by ordered choice with backtracking. Rule
// references are memoized per (rule, position, bound) so backtracking stays
// linear in practice. Non-code segments (whitespace, newlines, comments,
// template placeholders) are skipped before each element and kept in the
// tree inside the composite that skipped them, so every input segment ends
// up in exactly one place.
//
// # Recovery
//
// Parsing never fails on bad SQL. A statement that cannot be matched is
// wrapped in an "unparsable" composite up to the next statement delimiter at
// bracket depth zero. Greedy clause sequences (select_clause, from_clause,
// ...) recover locally: once their keyword matched, anything they cannot
// match up to the next clause keyword becomes an unparsable child and the
// statement continues. Only dialect configuration errors and cancellation
// are returned as errors.
package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/source"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Grammar entry points.
const (
	// StatementRule is matched repeatedly between delimiters.
	StatementRule = "statement"
	// FileType is the type of the root composite.
	FileType = "file"
)

// Result is a parsed file.
type Result struct {
	Tree *segment.Composite
	// Errors lists the unparsable spans in document order.
	Errors []*ParseError
}

// HasErrors reports whether any part of the input was unparsable.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Parse builds a tree from lexed segments.
func Parse(ctx context.Context, segs []segment.Segment, d *dialect.Dialect) (*Result, error) {
	return ParseAs(ctx, segs, d, StatementRule)
}

// ParseAs is Parse with a different root rule, matched repeatedly between
// delimiters. Useful for testing a single grammar rule.
func ParseAs(ctx context.Context, segs []segment.Segment, d *dialect.Dialect, rule string) (*Result, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	p := newParser(ctx, segs, d)
	root, err := p.parseFile(rule)
	if err != nil {
		return nil, err
	}

	res := &Result{Tree: root}
	segment.Walk(root, func(s segment.Segment, _ []segment.Segment) bool {
		if c, ok := s.(*segment.Composite); ok && c.Type() == UnparsableType {
			res.Errors = append(res.Errors, newParseError(c))
			return false
		}
		return true
	})
	return res, nil
}

// ParseFile lexes and parses a source file.
func ParseFile(ctx context.Context, f *source.File, d *dialect.Dialect) (*Result, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	return Parse(ctx, lexer.Lex(f, d), d)
}

// ParseString lexes and parses literal SQL.
func ParseString(ctx context.Context, sql string, d *dialect.Dialect) (*Result, error) {
	return ParseFile(ctx, source.NewLiteralFile("", sql), d)
}

// ---------- matcher ----------

// cancelCheckInterval is how many match calls run between context checks.
const cancelCheckInterval = 1024

type parser struct {
	ctx  context.Context
	d    *dialect.Dialect
	segs []segment.Segment
	// closeOf maps an opening bracket index to its closing bracket, or -1.
	closeOf []int
	memo    map[memoKey]memoEntry
	steps   int
	err     error
}

type memoKey struct {
	rule     string
	pos, end int
}

type memoEntry struct {
	m  match
	ok bool
}

// match is a successful match: the produced segments and the index of the
// first segment after them.
type match struct {
	segs []segment.Segment
	next int
}

func newParser(ctx context.Context, segs []segment.Segment, d *dialect.Dialect) *parser {
	return &parser{
		ctx:     ctx,
		d:       d,
		segs:    segs,
		closeOf: pairBrackets(segs),
		memo:    make(map[memoKey]memoEntry),
	}
}

// pairBrackets matches brackets by kind. Unmatched brackets map to -1 and
// make any Bracketed grammar fail at that point.
func pairBrackets(segs []segment.Segment) []int {
	closeOf := make([]int, len(segs))
	var stack []int
	for i, s := range segs {
		closeOf[i] = -1
		r, ok := s.(*segment.Raw)
		if !ok {
			continue
		}
		switch {
		case r.Kind().IsOpen():
			stack = append(stack, i)
		case r.Kind().IsClose():
			for j := len(stack) - 1; j >= 0; j-- {
				if segs[stack[j]].(*segment.Raw).Kind().Closer() == r.Kind() {
					closeOf[stack[j]] = i
					stack = stack[:j]
					break
				}
			}
		}
	}
	return closeOf
}

func (p *parser) parseFile(rule string) (*segment.Composite, error) {
	root := grammar.R(rule)
	n := len(p.segs)
	var out []segment.Segment

	pos := 0
	for {
		if err := p.ctx.Err(); err != nil {
			return nil, err
		}
		gap := p.skip(pos, n)
		out = append(out, p.segs[pos:gap]...)
		pos = gap
		if pos >= n {
			break
		}

		if r, ok := p.segs[pos].(*segment.Raw); ok && p.d.IsDelimiter(r.Kind()) {
			out = append(out, r)
			pos++
			continue
		}

		m, ok := p.match(root, pos, n)
		if p.err != nil {
			return nil, p.err
		}
		// Statements never share memo entries.
		clear(p.memo)
		if ok && m.next > pos {
			out = append(out, m.segs...)
			pos = m.next
			continue
		}

		stop := p.scanTo(nil, pos, n)
		last := p.lastCode(pos, stop)
		out = append(out, p.unparsable(pos, last+1))
		pos = last + 1
	}
	return segment.NewComposite(FileType, out), nil
}

func (p *parser) match(n grammar.Node, pos, end int) (match, bool) {
	if p.err != nil {
		return match{}, false
	}
	p.steps++
	if p.steps%cancelCheckInterval == 0 {
		if err := p.ctx.Err(); err != nil {
			p.err = err
			return match{}, false
		}
	}

	switch n := n.(type) {
	case *grammar.Sequence:
		return p.matchSequence(n, pos, end)
	case *grammar.OneOf:
		for _, opt := range n.Options {
			if m, ok := p.match(opt, pos, end); ok {
				return m, true
			}
		}
		return match{}, false
	case *grammar.Optional:
		if m, ok := p.match(n.Node, pos, end); ok {
			return m, true
		}
		return match{next: pos}, p.err == nil
	case *grammar.Repeat:
		return p.matchRepeat(n, pos, end)
	case *grammar.Delimited:
		return p.matchDelimited(n, pos, end)
	case *grammar.Bracketed:
		return p.matchBracketed(n, pos, end)
	case *grammar.Ref:
		return p.matchRef(n, pos, end)
	case *grammar.Anything:
		stop := p.scanTo(n.Terminators, pos, end)
		last := p.lastCode(pos, stop)
		if last < 0 {
			return match{next: pos}, true
		}
		return match{segs: p.segs[pos : last+1], next: last + 1}, true
	case *grammar.Keyword:
		r := p.rawAt(pos, end)
		if r == nil || r.Kind() != token.Keyword || !strings.EqualFold(r.Raw(), n.Word) {
			return match{}, false
		}
		return p.single(pos), true
	case *grammar.Symbol:
		r := p.rawAt(pos, end)
		if r == nil || r.Kind() != n.Kind || (n.Text != "" && !strings.EqualFold(r.Raw(), n.Text)) {
			return match{}, false
		}
		return p.single(pos), true
	case *grammar.Identifier:
		r := p.rawAt(pos, end)
		if r == nil {
			return match{}, false
		}
		switch r.Kind() {
		case token.Identifier, token.QuotedIdentifier:
			return p.single(pos), true
		case token.Keyword:
			if !p.d.IsReserved(r.Raw()) {
				return p.single(pos), true
			}
		}
		return match{}, false
	case *grammar.TypedToken:
		r := p.rawAt(pos, end)
		if r == nil {
			return match{}, false
		}
		for _, k := range n.Kinds {
			if r.Kind() == k {
				return p.single(pos), true
			}
		}
		return match{}, false
	case *grammar.Nothing:
		return match{}, false
	case *grammar.Meta:
		return match{segs: []segment.Segment{p.meta(n.Kind, pos)}, next: pos}, true
	default:
		panic(fmt.Sprintf("parser: unknown grammar node %T", n))
	}
}

func (p *parser) matchSequence(s *grammar.Sequence, pos, end int) (match, bool) {
	var out []segment.Segment
	cur := pos
	started := false
	for i, el := range s.Elements {
		if m, ok := el.(*grammar.Meta); ok {
			out = append(out, p.meta(m.Kind, cur))
			continue
		}
		gap := p.skip(cur, end)
		m, ok := p.match(el, gap, end)
		if !ok {
			if p.err != nil || s.Mode != grammar.GreedyOnceStarted || !started {
				return match{}, false
			}
			return p.recoverSequence(s, out, cur, end, s.Elements[i+1:])
		}
		if m.next > gap {
			out = append(out, p.segs[cur:gap]...)
			cur = m.next
			started = true
		}
		out = append(out, m.segs...)
	}
	if s.Mode == grammar.GreedyOnceStarted && started {
		out, cur = p.absorbTrailing(s, out, cur, end)
	}
	return match{segs: out, next: cur}, true
}

// recoverSequence wraps everything from cur to the next terminator as
// unparsable after an element of a started greedy sequence failed. The
// remaining layout metas are still emitted so indents stay balanced.
func (p *parser) recoverSequence(s *grammar.Sequence, out []segment.Segment, cur, end int, rest []grammar.Node) (match, bool) {
	gap := p.skip(cur, end)
	stop := p.scanTo(s.Terminators, gap, end)
	last := p.lastCode(gap, stop)
	if last < 0 {
		return match{}, false
	}
	out = append(out, p.segs[cur:gap]...)
	out = append(out, p.unparsable(gap, last+1))
	for _, el := range rest {
		if m, ok := el.(*grammar.Meta); ok {
			out = append(out, p.meta(m.Kind, last+1))
		}
	}
	return match{segs: out, next: last + 1}, true
}

// absorbTrailing claims code a completed greedy sequence left behind before
// the next terminator.
func (p *parser) absorbTrailing(s *grammar.Sequence, out []segment.Segment, cur, end int) ([]segment.Segment, int) {
	gap := p.skip(cur, end)
	if gap >= end || p.isBoundary(s.Terminators, gap, end) {
		return out, cur
	}
	stop := p.scanTo(s.Terminators, gap, end)
	last := p.lastCode(gap, stop)
	if last < 0 {
		return out, cur
	}
	out = append(out, p.segs[cur:gap]...)
	out = append(out, p.unparsable(gap, last+1))
	return out, last + 1
}

func (p *parser) matchRepeat(r *grammar.Repeat, pos, end int) (match, bool) {
	var out []segment.Segment
	cur := pos
	count := 0
	for r.Max <= 0 || count < r.Max {
		gap := p.skip(cur, end)
		if gap >= end {
			break
		}
		m, ok := p.match(r.Node, gap, end)
		if !ok || m.next == gap {
			break
		}
		out = append(out, p.segs[cur:gap]...)
		out = append(out, m.segs...)
		cur = m.next
		count++
	}
	if count < r.Min || p.err != nil {
		return match{}, false
	}
	return match{segs: out, next: cur}, true
}

func (p *parser) matchDelimited(d *grammar.Delimited, pos, end int) (match, bool) {
	var out []segment.Segment
	cur := pos
	count := 0
	// Position and output length before the last delimiter, so a delimiter
	// with nothing after it can be given back.
	backCur, backLen := -1, 0
	for {
		gap := p.skip(cur, end)
		m, ok := p.match(d.Node, gap, end)
		if !ok || m.next == gap {
			if backCur >= 0 && !d.AllowTrailing {
				out, cur = out[:backLen], backCur
			}
			break
		}
		out = append(out, p.segs[cur:gap]...)
		out = append(out, m.segs...)
		cur = m.next
		count++

		dgap := p.skip(cur, end)
		dm, ok := p.match(d.Delimiter, dgap, end)
		if !ok || dm.next == dgap {
			break
		}
		backCur, backLen = cur, len(out)
		out = append(out, p.segs[cur:dgap]...)
		out = append(out, dm.segs...)
		cur = dm.next
	}
	if count < d.Min || p.err != nil {
		return match{}, false
	}
	return match{segs: out, next: cur}, true
}

func (p *parser) matchBracketed(b *grammar.Bracketed, pos, end int) (match, bool) {
	r := p.rawAt(pos, end)
	if r == nil || r.Kind() != b.Open {
		return match{}, false
	}
	closeIdx := p.closeOf[pos]
	if closeIdx < 0 || closeIdx >= end || p.segs[closeIdx].(*segment.Raw).Kind() != b.Close {
		return match{}, false
	}

	start := p.skip(pos+1, closeIdx)
	m, ok := p.match(b.Node, start, closeIdx)
	if !ok {
		return match{}, false
	}
	if start < closeIdx && p.skip(m.next, closeIdx) != closeIdx {
		return match{}, false
	}

	children := make([]segment.Segment, 0, len(m.segs)+4)
	children = append(children, r)
	children = append(children, p.segs[pos+1:start]...)
	children = append(children, m.segs...)
	tail := m.next
	if tail < start {
		tail = start
	}
	children = append(children, p.segs[tail:closeIdx]...)
	children = append(children, p.segs[closeIdx])
	return match{segs: []segment.Segment{segment.NewComposite("bracketed", children)}, next: closeIdx + 1}, true
}

func (p *parser) matchRef(ref *grammar.Ref, pos, end int) (match, bool) {
	key := memoKey{rule: ref.Name, pos: pos, end: end}
	if e, ok := p.memo[key]; ok {
		return e.m, e.ok
	}
	rule, err := p.d.Rule(ref.Name)
	if err != nil {
		p.err = err
		return match{}, false
	}
	m, ok := p.match(rule.Grammar, pos, end)
	if p.err != nil {
		return match{}, false
	}
	if ok && rule.Type != "" && m.next > pos {
		m.segs = []segment.Segment{segment.NewComposite(rule.Type, m.segs)}
	}
	p.memo[key] = memoEntry{m: m, ok: ok}
	return m, ok
}

// ---------- helpers ----------

func (p *parser) rawAt(pos, end int) *segment.Raw {
	if pos >= end {
		return nil
	}
	r, _ := p.segs[pos].(*segment.Raw)
	return r
}

func (p *parser) single(pos int) match {
	return match{segs: p.segs[pos : pos+1], next: pos + 1}
}

// skip advances past non-code segments.
func (p *parser) skip(pos, end int) int {
	for pos < end && !p.segs[pos].IsCode() {
		pos++
	}
	return pos
}

// lastCode returns the index of the last code segment in [from, stop), or -1.
func (p *parser) lastCode(from, stop int) int {
	for i := stop - 1; i >= from; i-- {
		if p.segs[i].IsCode() {
			return i
		}
	}
	return -1
}

// isBoundary reports whether a statement delimiter or one of the terminators
// starts at pos.
func (p *parser) isBoundary(terminators []grammar.Node, pos, end int) bool {
	if r := p.rawAt(pos, end); r != nil && p.d.IsDelimiter(r.Kind()) {
		return true
	}
	for _, t := range terminators {
		if m, ok := p.match(t, pos, end); ok && m.next > pos {
			return true
		}
	}
	return false
}

// scanTo returns the first code position at or after from, at bracket depth
// zero, where a boundary starts; end if there is none.
func (p *parser) scanTo(terminators []grammar.Node, from, end int) int {
	for i := from; i < end; {
		if !p.segs[i].IsCode() {
			i++
			continue
		}
		if p.isBoundary(terminators, i, end) {
			return i
		}
		if c := p.closeOf[i]; c >= 0 && c < end {
			i = c + 1
			continue
		}
		i++
	}
	return end
}

func (p *parser) unparsable(from, to int) *segment.Composite {
	children := make([]segment.Segment, to-from)
	copy(children, p.segs[from:to])
	return segment.NewComposite(UnparsableType, children)
}

func (p *parser) meta(kind segment.MetaKind, pos int) segment.Segment {
	var m segment.PositionMarker
	switch {
	case pos < len(p.segs):
		m = p.segs[pos].Marker().Start()
	case len(p.segs) > 0:
		m = p.segs[len(p.segs)-1].Marker().End()
	}
	return segment.NewMeta(kind, m)
}
