package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/tensorbind/declc/internal/compiler"
	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/fs"
)

type opts struct {
	Roots          []string
	DumpAST        bool
	MaxParallelism int
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("declc", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for declaration documents.")
	flags.BoolVar(&op.DumpAST, "dump-ast", false, "Output the parsed declaration tree for each entry")
	flags.IntVar(&op.MaxParallelism, "max-parallelism", 0, "Maximum number of files processed concurrently. Defaults to the CPU count.")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	mf := make(fs.FileSystemMulti, 0, len(op.Roots))
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}

	c, err := compiler.New(
		compiler.OptionWithFS(mf),
		compiler.OptionWithMaxParallelism(op.MaxParallelism),
	)
	if err != nil {
		panic(err)
	}

	out, err := c.Compile(ctx, &decl.CompileRequest{
		Files:   targets,
		DumpAST: op.DumpAST,
	})
	if err != nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			for _, err := range me {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			os.Exit(1)
		}
		panic(err)
	}

	for _, d := range out.Decls {
		fmt.Printf("%s:%d: %s\n", d.Raw.URI, d.Raw.Line, d.Func.Name)
	}
}
