package soloman

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// Evaluator runs a parsed program, writing one line per print statement.
type Evaluator struct {
	out *bufio.Writer
	buf []byte
}

func NewEvaluator(w io.Writer) *Evaluator {
	return &Evaluator{
		out: bufio.NewWriter(w),
	}
}

// Run executes the statements in order and stops at the first failure. Lines
// printed before the failure are flushed to the writer.
func (e *Evaluator) Run(ast *AST) (err error) {
	defer func() {
		if ferr := e.out.Flush(); err == nil {
			err = ferr
		}
	}()

	for _, stmt := range ast.Statements {
		if err := e.exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) exec(stmt Stmt) error {
	switch s := stmt.(type) {
	case *PrintStmt:
		v, err := e.Eval(s.Expr)
		if err != nil {
			return err
		}

		e.buf = strconv.AppendInt(e.buf[:0], v, 10)
		e.buf = append(e.buf, '\n')
		_, err = e.out.Write(e.buf)
		return err
	default:
		return unsupported(stmt)
	}
}

// Eval computes the value of an expression with checked int64 arithmetic.
func (e *Evaluator) Eval(expr Expr) (int64, error) {
	switch ex := expr.(type) {
	case *LiteralExpr:
		return ex.Value, nil
	case *BinaryExpr:
		return e.binaryExpression(ex)
	default:
		return 0, unsupported(expr)
	}
}

func (e *Evaluator) binaryExpression(expr *BinaryExpr) (int64, error) {
	v1, err := e.Eval(expr.Op1)
	if err != nil {
		return 0, err
	}

	v2, err := e.Eval(expr.Op2)
	if err != nil {
		return 0, err
	}

	var (
		res int64
		ok  bool
	)

	switch expr.Operation {
	case BinaryAddition:
		res, ok = addInt64(v1, v2)
	case BinaryMultiplication:
		res, ok = mulInt64(v1, v2)
	default:
		return 0, unsupported(expr)
	}

	if !ok {
		return 0, &EvalError{
			Kind:  EvalOverflow,
			Op:    expr.Operation,
			Left:  v1,
			Right: v2,
			Loc:   expr.Loc,
		}
	}

	return res, nil
}

func unsupported(n Node) error {
	err := &EvalError{Kind: EvalUnsupported}
	if n != nil {
		err.Node = n.String()
		err.Loc = n.Location()
	}

	return err
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return c, false
	}

	return c, c/b == a
}
