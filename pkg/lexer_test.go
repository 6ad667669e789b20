package soloman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.soloman.dev/internal/test"
)

func loc(offset, line, column int) Location {
	return Location{Offset: offset, Line: line, Column: column}
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		fail   LexErrorKind
		failAt Location
		expect []Token
	}{
		{
			data: "print 1+2*3;",
			fail: -1,
			expect: []Token{
				{TokenPrint, "print", loc(0, 1, 1)},
				{TokenNumber, "1", loc(6, 1, 7)},
				{TokenPlus, "+", loc(7, 1, 8)},
				{TokenNumber, "2", loc(8, 1, 9)},
				{TokenMulti, "*", loc(9, 1, 10)},
				{TokenNumber, "3", loc(10, 1, 11)},
				{TokenSemicolon, ";", loc(11, 1, 12)},
			},
		},
		{
			data: "print 12;\nprint 3;",
			fail: -1,
			expect: []Token{
				{TokenPrint, "print", loc(0, 1, 1)},
				{TokenNumber, "12", loc(6, 1, 7)},
				{TokenSemicolon, ";", loc(8, 1, 9)},
				{TokenPrint, "print", loc(10, 2, 1)},
				{TokenNumber, "3", loc(16, 2, 7)},
				{TokenSemicolon, ";", loc(17, 2, 8)},
			},
		},
		{
			data: "print\t007 ;",
			fail: -1,
			expect: []Token{
				{TokenPrint, "print", loc(0, 1, 1)},
				{TokenNumber, "007", loc(6, 1, 7)},
				{TokenSemicolon, ";", loc(10, 1, 11)},
			},
		},
		{
			data: "print 9223372036854775807;",
			fail: -1,
			expect: []Token{
				{TokenPrint, "print", loc(0, 1, 1)},
				{TokenNumber, "9223372036854775807", loc(6, 1, 7)},
				{TokenSemicolon, ";", loc(25, 1, 26)},
			},
		},
		{
			data:   "",
			fail:   -1,
			expect: nil,
		},
		{
			data:   " \n\t ",
			fail:   -1,
			expect: nil,
		},
		{
			data:   "print 9223372036854775808;",
			fail:   LexInvalidNumber,
			failAt: loc(6, 1, 7),
		},
		{
			data:   "@",
			fail:   LexInvalidCharacter,
			failAt: loc(0, 1, 1),
		},
		{
			data:   "print 1 - 2;",
			fail:   LexInvalidCharacter,
			failAt: loc(8, 1, 9),
		},
		{
			data:   "Print 1;",
			fail:   LexUnknownIdentifier,
			failAt: loc(0, 1, 1),
		},
		{
			data:   "print x;",
			fail:   LexUnknownIdentifier,
			failAt: loc(6, 1, 7),
		},
		{
			data:   "print 12abc;",
			fail:   LexUnknownIdentifier,
			failAt: loc(8, 1, 9),
		},
	}

	for _, c := range cases {
		l := NewLexer(strings.NewReader(c.data))

		toks, err := l.RunBlocking()
		if c.fail >= 0 {
			var lexErr *LexError
			if assert.ErrorAs(t, err, &lexErr, c.data) {
				assert.Equal(t, c.fail, lexErr.Kind, c.data)
				assert.Equal(t, c.failAt, lexErr.Loc, c.data)
			}

			continue
		}

		assert.NoError(t, err, c.data)
		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestLexerEOFIsRepeated(t *testing.T) {
	l := NewLexerFromString("main.slm", "print 1;")

	_, err := l.RunBlocking()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Typ)
		assert.Equal(t, Location{Filename: "main.slm", Offset: 8, Line: 1, Column: 9}, tok.Loc)
	}
}

func TestLexerIsLazy(t *testing.T) {
	l := NewLexerFromString("", "print 1 @ 2;")

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenPrint, tok.Typ)

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenNumber, tok.Typ)

	_, err = l.Next()
	require.Error(t, err)

	// The first error sticks
	_, err2 := l.Next()
	assert.Equal(t, err, err2)
}

func TestTokenInt(t *testing.T) {
	v, err := Token{Typ: TokenNumber, Value: "42"}.Int()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomTokens(size)
		l := NewLexer(strings.NewReader(data))

		var err error
		b.StartTimer()

		benchResult, err = l.RunBlocking()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
