// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/optional"
)

// Line is one physical line of a file body together with its 1-based line
// number. Trailing newline characters are not included.
type Line struct {
	Number int32
	Text   string
}

// NewLineFileBody converts a FileBody into an iterator of lines.
func NewLineFileBody(b decl.FileBody) decl.Iterator[Line] {
	return NewLineFileBodyCtx(context.Background(), b)
}

// NewLineFileBodyCtx is the same as NewLineFileBody but uses the given
// context for all read operations for cancellation or other purposes.
func NewLineFileBodyCtx(ctx context.Context, b decl.FileBody) decl.Iterator[Line] {
	rc := &fileBodyIO{
		ctx:  ctx,
		body: b,
	}
	scanner := bufio.NewScanner(rc)
	scanner.Split(bufio.ScanLines)
	return &fileLines{
		readCloser: rc,
		scanner:    scanner,
	}
}

type fileLines struct {
	readCloser io.ReadCloser
	scanner    *bufio.Scanner
	line       int32
}

func (f *fileLines) Next(ctx context.Context) optional.Optional[Line] {
	ok := f.scanner.Scan()
	if !ok {
		return optional.None[Line]()
	}
	f.line = f.line + 1
	return optional.Some(Line{Number: f.line, Text: f.scanner.Text()})
}

func (f *fileLines) Close(context.Context) error {
	_ = f.readCloser.Close()
	return f.scanner.Err()
}

type fileBodyIO struct {
	ctx  context.Context
	body decl.FileBody
}

func (b *fileBodyIO) Read(p []byte) (int, error) {
	buf, err := b.body.Read(b.ctx, int32(len(p)))
	if err != nil && !errors.Is(err, io.EOF) {
		return len(buf), err
	}
	copy(p, buf)
	if errors.Is(err, io.EOF) {
		return len(buf), io.EOF
	}
	return len(buf), nil
}

func (b *fileBodyIO) Close() error {
	return b.body.Close(b.ctx)
}
