package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.soloman.dev/internal/config"
	"go.soloman.dev/pkg"
)

func main() {
	app := &cli.App{
		Name:      "soloman",
		Usage:     "Interpret or compile integer arithmetic print programs",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path to the config file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Trace the compiler stages on stderr",
			},
		},
		Action: defaultAction,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Interpret a file",
				ArgsUsage: "<file>",
				Action:    run,
			},
			{
				Name:      "build",
				Usage:     "Compile a file to a native executable with clang",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "The name for the built binary",
					},
					&cli.BoolFlag{
						Name:  "keep-ir",
						Usage: "Keep the generated .ll file",
					},
				},
				Action: build,
			},
			{
				Name:      "ir",
				Usage:     "Print the LLVM IR of a file",
				ArgsUsage: "<file>",
				Action:    emitIR,
			},
			{
				Name:      "tokens",
				Usage:     "Dump the token stream of a file as JSON",
				ArgsUsage: "<file>",
				Action:    dumpTokens,
			},
			{
				Name:      "ast",
				Usage:     "Print the parsed program with explicit grouping",
				ArgsUsage: "<file>",
				Action:    dumpAST,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}

func newCompiler(c *cli.Context, opts ...soloman.Option) *soloman.Compiler {
	if c.Bool("verbose") {
		opts = append(opts, soloman.WithTrace(log.New(os.Stderr, "soloman: ", 0)))
	}

	return soloman.NewCompiler(opts...)
}

func filename(c *cli.Context) (string, error) {
	name := c.Args().First()
	if name == "" {
		return "", cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	return name, nil
}

// defaultAction lets `soloman <file>` stand for `soloman run <file>`.
func defaultAction(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.ShowAppHelp(c)
	}

	return run(c)
}

func run(c *cli.Context) error {
	name, err := filename(c)
	if err != nil {
		return err
	}

	return report(newCompiler(c, soloman.WithOutput(os.Stdout)).Run(name))
}

func build(c *cli.Context) error {
	name, err := filename(c)
	if err != nil {
		return err
	}

	conf, err := loadConfig(c)
	if err != nil {
		return report(err)
	}

	if out := c.String("output"); out != "" {
		conf.Output = out
	}

	if c.Bool("keep-ir") {
		conf.KeepIR = true
	}

	mod, err := newCompiler(c).EmitIR(name)
	if err != nil {
		return report(err)
	}

	llFile := conf.Output + ".ll"
	if err := os.WriteFile(llFile, []byte(mod.String()), 0644); err != nil {
		return report(errors.Wrap(err, "writing IR"))
	}

	if !conf.KeepIR {
		defer os.Remove(llFile)
	}

	args := append(append([]string{}, conf.ClangFlags...), llFile, "-o", conf.Output)
	cmd := exec.Command(conf.Clang, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return report(errors.Wrapf(err, "running %s", conf.Clang))
	}

	return nil
}

func emitIR(c *cli.Context) error {
	name, err := filename(c)
	if err != nil {
		return err
	}

	mod, err := newCompiler(c).EmitIR(name)
	if err != nil {
		return report(err)
	}

	_, err = io.WriteString(os.Stdout, mod.String())
	return err
}

func dumpTokens(c *cli.Context) error {
	name, err := filename(c)
	if err != nil {
		return err
	}

	toks, err := newCompiler(c).Tokens(name)
	if err != nil {
		return report(err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toks); err != nil {
		return cli.Exit(color.RedString("Error encoding tokens: %s", err), 1)
	}

	return nil
}

func dumpAST(c *cli.Context) error {
	name, err := filename(c)
	if err != nil {
		return err
	}

	ast, err := newCompiler(c).Parse(name)
	if err != nil {
		return report(err)
	}

	_, err = io.WriteString(os.Stdout, ast.String())
	return err
}

func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path, true)
	}

	return config.Load(config.DefaultFilename, false)
}

// report turns a pipeline failure into a diagnostic and exit status 1.
func report(err error) error {
	if err == nil {
		return nil
	}

	var compileErr soloman.CompileError
	if errors.As(err, &compileErr) {
		return cli.Exit(color.RedString("%s", compileErr.Error()), 1)
	}

	return cli.Exit(color.RedString("Error: %s", err), 1)
}
