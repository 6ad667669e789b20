package soloman

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

const (
	builtinPrintName = "print"
	builtinPrintf    = "printf"
	intrinsicAdd     = "llvm.sadd.with.overflow.i64"
	intrinsicMul     = "llvm.smul.with.overflow.i64"
)

func defineBuiltins(b *LLVMIRBuilder) {
	printf := b.mod.NewFunc(builtinPrintf, types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true
	b.values.Set(builtinPrintf, printf)

	defineBuiltinFunc(b, builtinPrintName, builtinPrint(printf))
	defineBuiltinFunc(b, intrinsicAdd, overflowIntrinsic)
	defineBuiltinFunc(b, intrinsicMul, overflowIntrinsic)
}

type funcDefinition = func(mod *ir.Module) *ir.Func

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b.mod)
	f.SetName(name)
	b.values.Set(name, f)
}

// builtinPrint defines print(i64), which writes its argument and a newline
// through printf.
func builtinPrint(printf *ir.Func) funcDefinition {
	return func(mod *ir.Module) *ir.Func {
		f := mod.NewFunc("", types.Void, ir.NewParam("v", types.I64))
		b := f.NewBlock("")

		zero := constant.NewInt(types.I64, 0)

		format := constant.NewCharArrayFromString("%ld\n\x00")
		formatGlob := mod.NewGlobalDef("._print_fmt", format)
		formatGlob.Immutable = true

		fmtAddr := constant.NewGetElementPtr(format.Typ, formatGlob, zero, zero)

		b.NewCall(printf, fmtAddr, f.Params[0])

		b.NewRet(nil)

		return f
	}
}

// overflowIntrinsic declares one of the llvm.*.with.overflow.i64 intrinsics,
// which return the wrapped result and an overflow flag.
func overflowIntrinsic(mod *ir.Module) *ir.Func {
	ret := types.NewStruct(types.I64, types.I1)
	return mod.NewFunc("", ret, ir.NewParam("a", types.I64), ir.NewParam("b", types.I64))
}
