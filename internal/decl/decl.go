package decl

import (
	"context"
	"fmt"

	"github.com/tensorbind/declc/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindDeclYAML
	FileKindDeclText
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindDeclYAML:
		return "declaration-yaml"
	case FileKindDeclText:
		return "declaration-text"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
}

// Location is an absolute position within one source input. Line and Column
// are 1-based; Offset is the 0-based byte offset.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type Span struct {
	Start Location
	End   Location
}

// RawDeclaration is one entry extracted from a declaration document by the
// document-traversal layer. Signature is the text handed to the signature
// parser. Variants is carried through uninterpreted; the grammar reserves it
// as an extension point and nothing consumes it yet.
type RawDeclaration struct {
	URI       string
	Line      int32
	Signature string
	Variants  string
}

// ParsedDeclaration pairs an extracted entry with its parsed descriptor.
type ParsedDeclaration struct {
	Raw  RawDeclaration
	Func *FunctionDecl
}

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

type CompileRequest struct {
	Files   []string
	DumpAST bool
}

type CompileResponse struct {
	Decls []ParsedDeclaration
}
