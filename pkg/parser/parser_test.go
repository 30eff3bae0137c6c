package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registry = dialects.NewRegistry()

func parse(t *testing.T, dialectName, sql string) *parser.Result {
	t.Helper()
	d, err := registry.Get(dialectName)
	require.NoError(t, err)
	res, err := parser.ParseString(context.Background(), sql, d)
	require.NoError(t, err)
	return res
}

func TestValidStatementsParse(t *testing.T) {
	tests := []struct {
		dialect string
		sql     string
	}{
		{"ansi", "select a, b as c from t where a = 1 and b <> 'x' order by a desc limit 10"},
		{"ansi", "select t.a from t left join u on t.id = u.id inner join v using (id)"},
		{"ansi", "with x as (select 1 as a) select a from x union all select 2"},
		{"ansi", "select case when a > 1 then 'x' else null end as c from t"},
		{"ansi", "select count(*) from t group by 1 having count(*) > 1"},
		{"ansi", "select a from t where a between 1 and 2 and b in (1, 2) and c is not null"},
		{"ansi", "select a -- comment\nfrom t;\nselect b from u;"},
		{"ansi", "select sum(x) over (partition by a order by b rows between unbounded preceding and current row) from t"},
		{"ansi", "select * from (select a from t) as s where exists (select 1 from u)"},
		{"ansi", "insert into t (a, b) values (1, 2), (3, 4)"},
		{"ansi", "update t set a = 1, b = 'x' where c = 2"},
		{"ansi", "delete from t where a in (select a from u)"},
		{"ansi", "create table t (id int primary key, name varchar(10) not null)"},
		{"ansi", "create view v as select a from t"},
		{"ansi", "drop table if exists t, u"},
		{"ansi", "select cast(a as decimal(10, 2)) from t"},
		{"postgres", "select a::int, b from t where c ilike 'x%'"},
		{"postgres", "insert into t (a, b) values (1, $1) returning id"},
		{"postgres", "select distinct on (a) a, b from t order by a, b"},
		{"duckdb", "select * exclude (a) from t qualify row_number() over (partition by b order by c) = 1"},
		{"duckdb", "select a, count(*) from t group by all"},
		{"duckdb", "select * from t asof join u on t.ts >= u.ts"},
		{"snowflake", "select v:name::string as n from t sample (10) qualify n = 1"},
		{"databricks", "select a from t left semi join u on t.id = u.id where b rlike 'x'"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.sql, func(t *testing.T) {
			res := parse(t, tt.dialect, tt.sql)
			assert.Empty(t, res.Errors, segment.Dump(res.Tree))
			assert.Equal(t, tt.sql, res.Tree.Raw())
		})
	}
}

func TestTreeShape(t *testing.T) {
	res := parse(t, "ansi", "select a from t")
	require.Empty(t, res.Errors)

	assert.Equal(t, parser.FileType, res.Tree.Type())
	stmts := segment.FindAll(res.Tree, "statement")
	require.Len(t, stmts, 1)

	sel := segment.FindAll(res.Tree, "select_statement")
	require.Len(t, sel, 1)
	assert.NotNil(t, segment.ChildOfType(sel[0], "select_clause"))
	assert.NotNil(t, segment.ChildOfType(sel[0], "from_clause"))

	cols := segment.FindAll(res.Tree, "column_reference")
	require.Len(t, cols, 1)
	assert.Equal(t, "a", cols[0].Raw())
	tables := segment.FindAll(res.Tree, "table_reference")
	require.Len(t, tables, 1)
	assert.Equal(t, "t", tables[0].Raw())
}

func TestRecoveryAtOpenBracket(t *testing.T) {
	res := parse(t, "ansi", "select * from (")

	assert.Equal(t, "select * from (", res.Tree.Raw())
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Pos.Line)
	assert.Equal(t, 15, res.Errors[0].Pos.Column)
	assert.Equal(t, "(", res.Errors[0].Segment.Raw())

	// The unparsable span stays inside the clause that failed.
	from := segment.FindAll(res.Tree, "from_clause")
	require.Len(t, from, 1)
	assert.NotNil(t, segment.ChildOfType(from[0], parser.UnparsableType))
}

func TestRecoveryResumesAfterDelimiter(t *testing.T) {
	res := parse(t, "ansi", "select 1; this is not sql; select 2")

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "this is not sql", res.Errors[0].Segment.Raw())
	assert.Len(t, segment.FindAll(res.Tree, "select_statement"), 2)
}

func TestQualifyDependsOnDialect(t *testing.T) {
	sql := "select * from t qualify row_number() over (order by a) = 1"

	duck := parse(t, "duckdb", sql)
	assert.Empty(t, duck.Errors)
	assert.Len(t, segment.FindAll(duck.Tree, "qualify_clause"), 1)

	// In ANSI "qualify" is an ordinary identifier: it aliases t and the rest
	// of the statement is unparsable.
	plain := parse(t, "ansi", sql)
	assert.NotEmpty(t, plain.Errors)
	assert.Empty(t, segment.FindAll(plain.Tree, "qualify_clause"))
	aliases := segment.FindAll(plain.Tree, "alias_expression")
	require.Len(t, aliases, 1)
	assert.Equal(t, "qualify", aliases[0].Raw())
}

func TestEveryLexedSegmentAppearsOnce(t *testing.T) {
	inputs := []string{
		"select a, b from t where c = 1",
		"select * from (",
		"select (a from t",
		"garbage ) here ; select 1 ;;",
		"   \n-- only a comment\n",
		"",
	}
	d := registry.MustGet("ansi")
	for _, in := range inputs {
		segs := lexer.String(in, d)
		res, err := parser.Parse(context.Background(), segs, d)
		require.NoError(t, err)

		leaves := segment.Leaves(res.Tree)
		var fromLexer []segment.Segment
		for _, l := range leaves {
			if _, ok := l.(*segment.Raw); ok {
				fromLexer = append(fromLexer, l)
			} else if m := l.(*segment.Meta); m.Kind() == segment.Placeholder {
				fromLexer = append(fromLexer, l)
			}
		}
		require.Len(t, fromLexer, len(segs), in)
		for i := range segs {
			assert.Equal(t, segs[i].ID(), fromLexer[i].ID(), "%q leaf %d", in, i)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	sql := "select a, sum(b) from t join u on t.x = u.x group by a; select ( from"
	first := segment.Dump(parse(t, "duckdb", sql).Tree)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, segment.Dump(parse(t, "duckdb", sql).Tree))
	}
}

func TestUndefinedRuleIsConfigurationError(t *testing.T) {
	r := dialect.NewRegistry()
	require.NoError(t, r.Register(dialect.NewDialect("broken").
		Reserved("SELECT").
		Lexer(ansi.Matchers()...).
		Rule("statement", "statement", g.Seq(g.Kw("SELECT"), g.R("missing"))).
		Build()))

	res, err := parser.ParseString(context.Background(), "select 1", r.MustGet("broken"))
	assert.Nil(t, res)
	require.Error(t, err)

	var cfgErr *dialect.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "missing", cfgErr.Rule)
	assert.ErrorIs(t, err, dialect.ErrUndefinedRule)
}

func TestParseHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.ParseString(ctx, "select 1", registry.MustGet("ansi"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseRequiresDialect(t *testing.T) {
	_, err := parser.ParseString(context.Background(), "select 1", nil)
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}
