package soloman

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"
)

type Compiler struct {
	out   io.Writer
	trace *log.Logger
}

type Option func(*Compiler)

// WithOutput sets where print statements write. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Compiler) {
		c.out = w
	}
}

// WithTrace logs each pipeline stage to l.
func WithTrace(l *log.Logger) Option {
	return func(c *Compiler) {
		c.trace = l
	}
}

func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		out:   os.Stdout,
		trace: log.New(io.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run interprets the program in filename.
func (c *Compiler) Run(filename string) error {
	r, err := c.open(filename)
	if err != nil {
		return err
	}

	return c.RunFromReader(filename, r)
}

func (c *Compiler) RunFromReader(filename string, reader io.Reader) error {
	ast, err := c.ParseFromReader(filename, reader)
	if err != nil {
		return err
	}

	c.trace.Printf("evaluating %d statements", len(ast.Statements))
	return NewEvaluator(c.out).Run(ast)
}

func (c *Compiler) Parse(filename string) (*AST, error) {
	r, err := c.open(filename)
	if err != nil {
		return nil, err
	}

	return c.ParseFromReader(filename, r)
}

func (c *Compiler) ParseFromReader(filename string, reader io.Reader) (*AST, error) {
	c.trace.Printf("parsing %s", filename)
	return NewParser(NewLexerWithFilename(filename, reader)).Run()
}

func (c *Compiler) Tokens(filename string) ([]Token, error) {
	r, err := c.open(filename)
	if err != nil {
		return nil, err
	}

	c.trace.Printf("lexing %s", filename)
	return NewLexerWithFilename(filename, r).RunBlocking()
}

// EmitIR compiles the program in filename to an LLVM module.
func (c *Compiler) EmitIR(filename string) (*ir.Module, error) {
	r, err := c.open(filename)
	if err != nil {
		return nil, err
	}

	return c.EmitIRFromReader(filename, r)
}

func (c *Compiler) EmitIRFromReader(filename string, reader io.Reader) (*ir.Module, error) {
	ast, err := c.ParseFromReader(filename, reader)
	if err != nil {
		return nil, err
	}

	c.trace.Printf("generating IR for %d statements", len(ast.Statements))
	return NewLLVMGenerator(ast).Do()
}

func (c *Compiler) open(filename string) (io.Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}

	return bytes.NewReader(data), nil
}
