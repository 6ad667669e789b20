package soloman

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// exitOverflow is the status main returns when checked arithmetic overflows.
const exitOverflow = 1

type LLVMIRBuilder struct {
	mod    *ir.Module
	fn     *ir.Func
	block  *ir.Block
	values *ValueLookup

	overflow *ir.Block
	blocks   int
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) main() {
	b.fn = b.mod.NewFunc("main", types.I32)
	b.block = b.fn.NewBlock("entry")
}

func (b *LLVMIRBuilder) finish() {
	b.block.NewRet(constant.NewInt(types.I32, 0))
}

func (b *LLVMIRBuilder) statement(stmt Stmt) error {
	switch s := stmt.(type) {
	case *PrintStmt:
		v, err := b.recursiveLoad(s.Expr)
		if err != nil {
			return err
		}

		printFn, err := b.lookup(builtinPrintName)
		if err != nil {
			return err
		}

		b.block.NewCall(printFn, v)
		return nil
	default:
		return unsupported(stmt)
	}
}

func (b *LLVMIRBuilder) recursiveLoad(expr Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return constant.NewInt(types.I64, e.Value), nil
	case *BinaryExpr:
		return b.binaryExpression(e)
	default:
		return nil, unsupported(expr)
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	v1, err := b.recursiveLoad(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := b.recursiveLoad(expr.Op2)
	if err != nil {
		return nil, err
	}

	var name string
	switch expr.Operation {
	case BinaryAddition:
		name = intrinsicAdd
	case BinaryMultiplication:
		name = intrinsicMul
	default:
		return nil, unsupported(expr)
	}

	intrinsic, err := b.lookup(name)
	if err != nil {
		return nil, err
	}

	res := b.block.NewCall(intrinsic, v1, v2)
	sum := b.block.NewExtractValue(res, 0)
	overflowed := b.block.NewExtractValue(res, 1)

	cont := b.newBlock()
	b.block.NewCondBr(overflowed, b.overflowBlock(), cont)
	b.block = cont

	return sum, nil
}

// overflowBlock is shared by every checked operation in main.
func (b *LLVMIRBuilder) overflowBlock() *ir.Block {
	if b.overflow == nil {
		b.overflow = b.fn.NewBlock("overflow")
		b.overflow.NewRet(constant.NewInt(types.I32, exitOverflow))
	}

	return b.overflow
}

func (b *LLVMIRBuilder) newBlock() *ir.Block {
	b.blocks++
	return b.fn.NewBlock(fmt.Sprintf("cont.%d", b.blocks))
}

func (b *LLVMIRBuilder) lookup(name string) (value.Value, error) {
	v, ok := b.values.Get(name)
	if !ok {
		return nil, fmt.Errorf("undefined builtin: %s", name)
	}

	return v, nil
}

// LLVMGenerator lowers a program to an LLVM module whose main prints every
// statement and returns 1 on overflow.
type LLVMGenerator struct {
	ast *AST
}

func NewLLVMGenerator(ast *AST) *LLVMGenerator {
	return &LLVMGenerator{
		ast: ast,
	}
}

func (g LLVMGenerator) Do() (*ir.Module, error) {
	builder := NewLLVMIRBuilder()
	builder.main()

	for _, stmt := range g.ast.Statements {
		if err := builder.statement(stmt); err != nil {
			return nil, err
		}
	}

	builder.finish()
	return builder.mod, nil
}
