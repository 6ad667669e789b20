package soloman

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Location is a position in the source text. Lines and columns start at 1.
type Location = lexer.Position

// CompileError is implemented by every error the pipeline produces for bad
// source text, so callers can report them uniformly.
type CompileError interface {
	error
	Location() Location
}

type LexErrorKind int

const (
	LexInvalidCharacter LexErrorKind = iota
	LexInvalidNumber
	LexUnknownIdentifier
)

func (k LexErrorKind) String() string {
	switch k {
	case LexInvalidCharacter:
		return "invalid character"
	case LexInvalidNumber:
		return "invalid number"
	case LexUnknownIdentifier:
		return "unknown identifier"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

type LexError struct {
	Kind LexErrorKind
	Text string
	Loc  Location
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lex error: %s %q", e.Loc, e.Kind, e.Text)
}

func (e *LexError) Location() Location {
	return e.Loc
}

type ParseErrorKind int

const (
	ParseUnexpectedToken ParseErrorKind = iota
	ParseUnexpectedEndOfInput
)

func (k ParseErrorKind) String() string {
	switch k {
	case ParseUnexpectedToken:
		return "unexpected token"
	case ParseUnexpectedEndOfInput:
		return "unexpected end of input"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError reports a token stream that does not match the grammar. Found is
// the offending token; for ParseUnexpectedEndOfInput it is the EOF token.
type ParseError struct {
	Kind     ParseErrorKind
	Expected string
	Found    Token
	Loc      Location
}

func (e *ParseError) Error() string {
	if e.Kind == ParseUnexpectedEndOfInput {
		return fmt.Sprintf("%s: parse error: %s, expected %s", e.Loc, e.Kind, e.Expected)
	}

	return fmt.Sprintf("%s: parse error: %s %s, expected %s", e.Loc, e.Kind, e.Found, e.Expected)
}

func (e *ParseError) Location() Location {
	return e.Loc
}

type EvalErrorKind int

const (
	EvalOverflow EvalErrorKind = iota
	EvalUnsupported
)

func (k EvalErrorKind) String() string {
	switch k {
	case EvalOverflow:
		return "integer overflow"
	case EvalUnsupported:
		return "unsupported node"
	default:
		return fmt.Sprintf("EvalErrorKind(%d)", int(k))
	}
}

// EvalError reports a failure while running a program. For EvalOverflow, Op,
// Left and Right describe the operation that left the int64 range.
type EvalError struct {
	Kind  EvalErrorKind
	Op    BinaryOp
	Left  int64
	Right int64
	Node  string
	Loc   Location
}

func (e *EvalError) Error() string {
	if e.Kind == EvalOverflow {
		return fmt.Sprintf("%s: eval error: %s in %d %s %d", e.Loc, e.Kind, e.Left, e.Op, e.Right)
	}

	return fmt.Sprintf("%s: eval error: %s %s", e.Loc, e.Kind, e.Node)
}

func (e *EvalError) Location() Location {
	return e.Loc
}
