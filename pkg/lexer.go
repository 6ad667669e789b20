package soloman

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenEOF TokenType = iota
	TokenNumber
	TokenPrint

	TokenPlus
	TokenMulti
	TokenSemicolon
)

var tokenNames = map[TokenType]string{
	TokenEOF:       "EOF",
	TokenNumber:    "Number",
	TokenPrint:     "Print",
	TokenPlus:      "Plus",
	TokenMulti:     "Multi",
	TokenSemicolon: "Semicolon",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

var keywordTable = map[string]TokenType{
	"print": TokenPrint,
}

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'*': TokenMulti,
	';': TokenSemicolon,
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   Location
}

func (t Token) String() string {
	switch t.Typ {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number " + t.Value
	default:
		return "'" + t.Value + "'"
	}
}

// Int returns the value of a TokenNumber.
func (t Token) Int() (int64, error) {
	return strconv.ParseInt(t.Value, 10, 64)
}

// Lexer turns source text into tokens on demand. Each call to Next runs the
// state machine only until at least one token is available.
type Lexer struct {
	filename string
	reader   *bufio.Reader

	state   stateFunc
	pending []Token
	eof     *Token
	err     error

	pos   Location
	start Location
}

func NewLexer(reader io.Reader) *Lexer {
	return NewLexerWithFilename("", reader)
}

func NewLexerWithFilename(filename string, reader io.Reader) *Lexer {
	return &Lexer{
		filename: filename,
		reader:   bufio.NewReader(reader),
		state:    defaultState,
		pos:      Location{Filename: filename, Line: 1, Column: 1},
	}
}

func NewLexerFromString(filename, src string) *Lexer {
	return NewLexerWithFilename(filename, strings.NewReader(src))
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

// Next returns the next token. Once TokenEOF has been returned it is returned
// again on every call; once an error has been returned it is returned again.
func (l *Lexer) Next() (Token, error) {
	for len(l.pending) == 0 {
		if l.err != nil {
			return Token{}, l.err
		}

		if l.state == nil {
			return *l.eof, nil
		}

		l.state = l.state(l)
	}

	tok := l.pending[0]
	l.pending = l.pending[1:]

	return tok, nil
}

// RunBlocking lexes the whole input. The trailing TokenEOF is not included.
func (l *Lexer) RunBlocking() ([]Token, error) {
	var tokens []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}

		if t.Typ == TokenEOF {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.pos

		switch r := l.peek(); {
		case r == EOF:
			tok := Token{Typ: TokenEOF, Loc: l.start}
			l.eof = &tok
			l.pending = append(l.pending, tok)
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			return numberState
		case isIdentStart(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return l.errorf(LexInvalidNumber, num.String())
	}

	return l.emitValue(TokenNumber, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isIdentStart(r) || isDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emitValue(t, id.String())
	}

	return l.errorf(LexUnknownIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if tok, ok := operatorTable[r]; ok {
		return l.emitValue(tok, string(r))
	}

	return l.errorf(LexInvalidCharacter, string(r))
}

func (l *Lexer) errorf(kind LexErrorKind, text string) stateFunc {
	l.err = &LexError{
		Kind: kind,
		Text: text,
		Loc:  l.start,
	}

	return nil
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	l.pending = append(l.pending, Token{
		Typ:   t,
		Value: val,
		Loc:   l.start,
	})

	return defaultState
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	l.pos.Offset += size
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
