// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
	"github.com/tensorbind/declc/internal/fs"
)

type fsMap map[string][]decl.File

func (m fsMap) Open(ctx context.Context, uri string) ([]decl.File, error) {
	files, ok := m[uri]
	if !ok {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeFileNotFound, "not found")
	}
	return files, nil
}

func newTestCompiler(t *testing.T, files fsMap) decl.Compiler {
	t.Helper()
	c, err := New(OptionWithFS(files))
	require.NoError(t, err)
	return c
}

func TestCompileYAMLDocument(t *testing.T) {
	t.Parallel()
	doc := `- func: fft(Tensor self, int64_t signal_ndim, bool normalized=false) -> Tensor
  variants: function
- name: log10_(Tensor self) -> Tensor
  variants:
    - method
    - function
`
	c := newTestCompiler(t, fsMap{
		"/decls.yaml": {fs.NewFileString("/decls.yaml", doc, decl.FileKindDeclYAML)},
	})

	out, err := c.Compile(context.Background(), &decl.CompileRequest{Files: []string{"/decls.yaml"}})
	require.NoError(t, err)
	require.Len(t, out.Decls, 2)
	require.Equal(t, "fft", out.Decls[0].Func.Name)
	require.Equal(t, "function", out.Decls[0].Raw.Variants)
	require.Equal(t, int32(1), out.Decls[0].Raw.Line)
	require.Equal(t, "log10_", out.Decls[1].Func.Name)
	require.Equal(t, "method, function", out.Decls[1].Raw.Variants)
}

func TestCompileTextDocument(t *testing.T) {
	t.Parallel()
	doc := `# native functions
fft(Tensor self, int64_t signal_ndim, bool normalized=false) -> Tensor

current_device() -> int64_t
`
	c := newTestCompiler(t, fsMap{
		"/decls.decl": {fs.NewFileString("/decls.decl", doc, decl.FileKindDeclText)},
	})

	out, err := c.Compile(context.Background(), &decl.CompileRequest{Files: []string{"/decls.decl"}})
	require.NoError(t, err)
	require.Len(t, out.Decls, 2)
	require.Equal(t, "fft", out.Decls[0].Func.Name)
	require.Equal(t, int32(2), out.Decls[0].Raw.Line)
	require.Equal(t, "current_device", out.Decls[1].Func.Name)
	require.Equal(t, int32(4), out.Decls[1].Raw.Line)
}

// One malformed entry is reported against its own line and skipped; the
// entries around it still come through.
func TestCompileFailClosedPerEntry(t *testing.T) {
	t.Parallel()
	doc := `- func: fft(Tensor self, int64_t signal_ndim) -> Tensor
- func: broken(Blob x) -> Tensor
- func: current_device() -> int64_t
`
	c := newTestCompiler(t, fsMap{
		"/decls.yaml": {fs.NewFileString("/decls.yaml", doc, decl.FileKindDeclYAML)},
	})

	out, err := c.Compile(context.Background(), &decl.CompileRequest{Files: []string{"/decls.yaml"}})
	require.Error(t, err)
	merr, ok := err.(MultiException)
	require.True(t, ok)
	require.Len(t, merr, 1)
	require.Equal(t, "/decls.yaml", merr[0].Location().URI)
	require.Equal(t, int32(2), merr[0].Location().Line)
	require.Len(t, out.Decls, 2)
	require.Equal(t, "fft", out.Decls[0].Func.Name)
	require.Equal(t, "current_device", out.Decls[1].Func.Name)
}

func TestCompileEntryWithoutSignature(t *testing.T) {
	t.Parallel()
	doc := `- variants: function
- func: current_device() -> int64_t
`
	c := newTestCompiler(t, fsMap{
		"/decls.yaml": {fs.NewFileString("/decls.yaml", doc, decl.FileKindDeclYAML)},
	})

	out, err := c.Compile(context.Background(), &decl.CompileRequest{Files: []string{"/decls.yaml"}})
	require.Error(t, err)
	merr, ok := err.(MultiException)
	require.True(t, ok)
	require.Len(t, merr, 1)
	require.Equal(t, exc.CodeMalformedEntry, merr[0].Code())
	require.Len(t, out.Decls, 1)
}

func TestCompileMissingFile(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t, fsMap{})

	_, err := c.Compile(context.Background(), &decl.CompileRequest{Files: []string{"/nope.yaml"}})
	require.Error(t, err)
	merr, ok := err.(MultiException)
	require.True(t, ok)
	require.Len(t, merr, 1)
	require.Equal(t, exc.CodeFileNotFound, merr[0].Code())
}

func TestCompileMultipleTargets(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t, fsMap{
		"/a.decl": {fs.NewFileString("/a.decl", "fft(Tensor self, int64_t signal_ndim) -> Tensor\n", decl.FileKindDeclText)},
		"/b.decl": {fs.NewFileString("/b.decl", "current_device() -> int64_t\n", decl.FileKindDeclText)},
	})

	out, err := c.Compile(context.Background(), &decl.CompileRequest{Files: []string{"/a.decl", "/b.decl"}})
	require.NoError(t, err)
	require.Len(t, out.Decls, 2)
	names := map[string]bool{}
	for _, d := range out.Decls {
		names[d.Func.Name] = true
	}
	require.True(t, names["fft"])
	require.True(t, names["current_device"])
}
