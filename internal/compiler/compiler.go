// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
	"github.com/tensorbind/declc/internal/fs"
	"github.com/tensorbind/declc/internal/sig"
)

type Option func(c *compiler) error

func OptionWithFS(f decl.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = f
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func OptionWithMaxParallelism(v int) Option {
	return func(c *compiler) error {
		c.MaxParallelism = v
		return nil
	}
}

func New(opts ...Option) (decl.Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.FS == nil {
		dfs, err := fs.NewFileSystemLocal("/")
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxParallelism == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxParallelism = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxParallelism)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.Extractors == nil {
		c.Extractors = DefaultExtractors()
	}
	return c, nil
}

type compiler struct {
	FS             decl.FileSystem
	MaxParallelism int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Extractors     map[decl.FileKind]Extractor
}

// Compile opens every target, extracts the raw declaration entries from each
// file, and parses every signature. Files are processed in parallel under the
// semaphore; entries within a file parse independently, so one malformed
// signature is reported and skipped without affecting any other entry.
func (c *compiler) Compile(ctx context.Context, req *decl.CompileRequest) (*decl.CompileResponse, error) {
	targets := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		targets = append(targets, c.targetURI(ctx, f))
	}
	files := make([]decl.File, 0, len(targets))
	for _, target := range targets {
		in, err := c.FS.Open(ctx, target)
		if err != nil {
			_ = c.Reporter.Report(exc.Wrap(exc.Location{URI: target}, exc.CodeFileNotFound, err))
			continue
		}
		for _, inf := range in {
			if inf.Kind(ctx) == decl.FileKindNone {
				continue
			}
			files = append(files, inf)
		}
	}

	results := make(chan fileResult)
	for _, file := range files {
		go func(file decl.File) {
			decls := c.compileFile(ctx, file, req.DumpAST)
			results <- fileResult{decls: decls}
		}(file)
	}

	out := &decl.CompileResponse{}
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			out.Decls = append(out.Decls, result.decls...)
		}
	}

	caught := c.Reporter.Reported()
	if len(caught) > 0 {
		return out, MultiException(caught)
	}
	return out, nil
}

func (c *compiler) compileFile(ctx context.Context, file decl.File, dumpAST bool) []decl.ParsedDeclaration {
	c.Semaphore.Lock()
	defer c.Semaphore.Unlock()

	ex := c.Extractors[file.Kind(ctx)]
	if ex == nil {
		_ = c.Reporter.Report(exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, "unsupported file format"))
		return nil
	}
	raws, err := ex.Extract(ctx, c.Reporter, file)
	if err != nil {
		_ = c.Reporter.Report(exc.WrapUnknown(exc.Location{URI: file.Path(ctx)}, err))
		return nil
	}
	defer func() {
		_ = raws.Close(ctx)
	}()

	decls := []decl.ParsedDeclaration{}
	for {
		rd, ok := raws.Next(ctx).Get()
		if !ok {
			break
		}
		fn, err := sig.Parse(rd.Signature)
		if err != nil {
			// Fail closed for this entry only; the remaining entries still
			// parse.
			_ = c.Reporter.Report(c.entryErr(rd, err))
			continue
		}
		if dumpAST {
			spew.Dump(fn)
		}
		decls = append(decls, decl.ParsedDeclaration{Raw: rd, Func: fn})
	}
	return decls
}

// entryErr re-homes a signature parse error onto the document that the entry
// came from, preserving the in-line column and offset.
func (c *compiler) entryErr(rd decl.RawDeclaration, err error) exc.Exception {
	if ie, ok := err.(exc.Exception); ok {
		return exc.New(exc.Location{
			URI: rd.URI,
			Location: decl.Location{
				Line:   rd.Line,
				Column: ie.Location().Column,
				Offset: ie.Location().Offset,
			},
		}, ie.Code(), ie.Message())
	}
	return exc.WrapUnknown(exc.Location{URI: rd.URI, Location: decl.Location{Line: rd.Line}}, err)
}

func (c *compiler) targetURI(ctx context.Context, target string) string {
	// Targets may be any valid URI or file path. File paths and file URIs are
	// converted to an absolute form to work with the local implementation of
	// the FileSystem interface. All non-file URIs are left as-is with the
	// expectation that they will be handled by some other implementation.
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	if !filepath.IsAbs(target) {
		return filepath.Join("/", target)
	}
	return target
}

type fileResult struct {
	decls []decl.ParsedDeclaration
}

type MultiException []exc.Exception

func (m MultiException) Error() string {
	var b strings.Builder
	for _, err := range m[:len(m)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(m[len(m)-1].Error())
	return b.String()
}
