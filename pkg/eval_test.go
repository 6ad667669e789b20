package soloman

import (
	"bytes"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.soloman.dev/internal/test"
)

func runSource(t *testing.T, src string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := NewCompiler(WithOutput(&out)).RunFromReader("test.slm", strings.NewReader(src))

	return out.String(), err
}

func TestEvaluator(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"", ""},
		{"  \n\t\n", ""},
		{"print 42;", "42\n"},
		{"print 1+2+3;", "6\n"},
		{"print 2*3*4;", "24\n"},
		{"print 1+2*3;", "7\n"},
		{"print 2*3+1;", "7\n"},
		{"print 1+1; print 5*6;", "2\n30\n"},
		{"print 0*9223372036854775807;", "0\n"},
		{"print 9223372036854775807;", "9223372036854775807\n"},
		{"print 9223372036854775806+1;", "9223372036854775807\n"},
		{"print\n  1\n  +\n  2\n  ;", "3\n"},
	}

	for _, c := range cases {
		got, err := runSource(t, c.data)
		assert.NoError(t, err, c.data)
		assert.Equal(t, c.expect, got, c.data)
	}
}

func TestEvaluatorOverflow(t *testing.T) {
	cases := []struct {
		data   string
		expect string
		op     BinaryOp
	}{
		{"print 9223372036854775807+1;", "", BinaryAddition},
		{"print 4611686018427387904*2;", "", BinaryMultiplication},
		{"print 1; print 3037000500*3037000500; print 2;", "1\n", BinaryMultiplication},
		{"print 5; print 9223372036854775807 + 0 * 1 + 1; print 6;", "5\n", BinaryAddition},
	}

	for _, c := range cases {
		got, err := runSource(t, c.data)

		var evalErr *EvalError
		if assert.ErrorAs(t, err, &evalErr, c.data) {
			assert.Equal(t, EvalOverflow, evalErr.Kind)
			assert.Equal(t, c.op, evalErr.Op)
			assert.Equal(t, "test.slm", evalErr.Loc.Filename)
		}

		assert.Equal(t, c.expect, got, c.data)
	}
}

func TestEvaluatorParseErrorPrintsNothing(t *testing.T) {
	got, err := runSource(t, "print 1; print 1+;")

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Empty(t, got)
}

func TestEvaluatorUnsupportedNode(t *testing.T) {
	var out bytes.Buffer
	err := NewEvaluator(&out).Run(&AST{
		Statements: []Stmt{
			&PrintStmt{Expr: lit(1)},
			&PrintStmt{Expr: &BinaryExpr{Operation: "-", Op1: lit(2), Op2: lit(1)}},
		},
	})

	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, EvalUnsupported, evalErr.Kind)
	assert.Equal(t, "1\n", out.String())
}

func TestCheckedArithmetic(t *testing.T) {
	cases := []struct {
		a, b int64
		add  bool
		mul  bool
		sum  int64
		prod int64
	}{
		{a: 1, b: 2, add: true, mul: true, sum: 3, prod: 2},
		{a: math.MaxInt64, b: 1, add: false, mul: true, prod: math.MaxInt64},
		{a: math.MinInt64, b: -1, add: false, mul: false},
		{a: -1, b: math.MinInt64, add: false, mul: false},
		{a: math.MaxInt64, b: -1, add: true, mul: true, sum: math.MaxInt64 - 1, prod: -math.MaxInt64},
		{a: 3037000499, b: 3037000499, add: true, mul: true, sum: 6074000998, prod: 9223372030926249001},
		{a: 3037000500, b: 3037000500, add: true, mul: false, sum: 6074001000},
		{a: 0, b: math.MinInt64, add: true, mul: true, sum: math.MinInt64, prod: 0},
	}

	for _, c := range cases {
		sum, ok := addInt64(c.a, c.b)
		assert.Equal(t, c.add, ok, "%d + %d", c.a, c.b)
		if ok {
			assert.Equal(t, c.sum, sum)
		}

		prod, ok := mulInt64(c.a, c.b)
		assert.Equal(t, c.mul, ok, "%d * %d", c.a, c.b)
		if ok {
			assert.Equal(t, c.prod, prod)
		}
	}
}

func TestEvaluatorRandomPrograms(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		src, expect := test.GetRandomProgram(r, 1+r.Intn(20))

		var want strings.Builder
		for _, v := range expect {
			want.WriteString(strconv.FormatInt(v, 10))
			want.WriteByte('\n')
		}

		got, err := runSource(t, src)
		require.NoError(t, err, src)
		assert.Equal(t, want.String(), got, src)
	}
}

func benchmarkEvaluator(size int, b *testing.B) {
	src, _ := test.GetRandomProgram(rand.New(rand.NewSource(int64(size))), size)
	ast, err := NewParser(NewLexerFromString("", src)).Run()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		var out bytes.Buffer
		if err := NewEvaluator(&out).Run(ast); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluator100(b *testing.B) {
	benchmarkEvaluator(100, b)
}

func BenchmarkEvaluator10000(b *testing.B) {
	benchmarkEvaluator(10000, b)
}
