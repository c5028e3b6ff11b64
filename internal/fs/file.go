// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/tensorbind/declc/internal/decl"
)

// NewFileString wraps static string content in decl.File.
func NewFileString(path string, content string, kind decl.FileKind) decl.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, kind)
}

type fileIOFunc struct {
	path string
	kind decl.FileKind
	body func() (io.ReadCloser, error)
}

// NewFileFN is intended to wrap actual file based content in the decl.File
// interface. The given body function is used each time there is a call to the
// decl.File.Body method so it must return a new io.ReadCloser handle.
func NewFileFN(path string, body func() (io.ReadCloser, error), kind decl.FileKind) decl.File {
	return &fileIOFunc{
		path: path,
		kind: kind,
		body: body,
	}
}

func (f *fileIOFunc) Path(ctx context.Context) string {
	return f.path
}
func (f *fileIOFunc) Kind(ctx context.Context) decl.FileKind {
	return f.kind
}
func (f *fileIOFunc) Body(ctx context.Context) (decl.FileBody, error) {
	rc, err := f.body()
	if err != nil {
		return nil, err
	}
	return &ioBody{
		reader: bufio.NewReader(rc),
		closer: rc,
	}, nil
}

type ioBody struct {
	reader *bufio.Reader
	closer io.Closer
}

func (b *ioBody) Read(ctx context.Context, size int32) ([]byte, error) {
	buf := make([]byte, size)
	n, err := b.reader.Read(buf)
	return buf[:n], err
}

func (b *ioBody) Close(ctx context.Context) error {
	return b.closer.Close()
}
