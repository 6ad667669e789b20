package soloman

import (
	"strconv"
	"strings"
)

type AST struct {
	Filename   string
	Statements []Stmt
}

// String renders the program one statement per line with every binary
// expression fully parenthesised, which makes grouping visible.
func (a *AST) String() string {
	var sb strings.Builder
	for _, stmt := range a.Statements {
		sb.WriteString(stmt.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

type Node interface {
	String() string
	Location() Location
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type PrintStmt struct {
	Expr Expr
	Loc  Location
}

func (s *PrintStmt) String() string      { return "print " + s.Expr.String() + ";" }
func (s *PrintStmt) Location() Location { return s.Loc }
func (*PrintStmt) stmtNode()            {}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinaryMultiplication BinaryOp = "*"
)

// BinaryExpr is located at its operator.
type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
	Loc       Location
}

func (e *BinaryExpr) String() string {
	return "(" + e.Op1.String() + " " + string(e.Operation) + " " + e.Op2.String() + ")"
}

func (e *BinaryExpr) Location() Location { return e.Loc }
func (*BinaryExpr) exprNode()            {}

type LiteralExpr struct {
	Value int64
	Loc   Location
}

func (e *LiteralExpr) String() string      { return strconv.FormatInt(e.Value, 10) }
func (e *LiteralExpr) Location() Location { return e.Loc }
func (*LiteralExpr) exprNode()            {}
