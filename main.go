package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"minml/pkg/lsp"
	"minml/pkg/minml"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

var version = "0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "minml",
		Usage:   "a tiny ML with monomorphic type inference",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "infer and print the type of a program",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prelude", Aliases: []string{"p"}, Usage: "YAML file with extra initial bindings"},
				},
				Action: checkAction,
			},
			{
				Name:   "lsp",
				Usage:  "run the language server on stdin/stdout",
				Action: lspAction,
			},
			{
				Name:   "version",
				Usage:  "print minml version",
				Action: versionAction,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("you must specify a file to check")
	}
	fileName := cmd.Args().Get(0)
	if !strings.HasSuffix(fileName, ".mml") {
		return errors.New("file must have '.mml' extension")
	}
	by, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	env := minml.NewEnv()
	if preludeFile := cmd.String("prelude"); preludeFile != "" {
		data, err := os.ReadFile(preludeFile)
		if err != nil {
			return err
		}
		if env, err = minml.LoadPrelude(env, data); err != nil {
			return err
		}
	}
	expr, err := minml.ParseSrc(string(by))
	if err != nil {
		fail(fileName, err)
	}
	t, _, err := minml.NewInferrer(env).Infer(expr)
	if err != nil {
		fail(fileName, err)
	}
	fmt.Println(t)
	return nil
}

// fail prints a diagnostic and exits non-zero. The error prefix is colored
// when stderr is a terminal.
func fail(fileName string, err error) {
	prefix := "error:"
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		prefix = "\x1b[31merror:\x1b[0m"
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", prefix, fileName, err)
	os.Exit(1)
}

func lspAction(ctx context.Context, cmd *cli.Command) error {
	return lsp.NewServer(os.Stdin, os.Stdout).Run()
}

func versionAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Println(version)
	return nil
}
