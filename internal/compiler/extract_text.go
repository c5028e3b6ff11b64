// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"strings"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
	"github.com/tensorbind/declc/internal/iter"
)

// ExtractorText handles plain text documents carrying one signature per line.
// Blank lines and lines starting with # are skipped.
type ExtractorText struct{}

func (e *ExtractorText) Extract(ctx context.Context, r exc.Reporter, file decl.File) (decl.Iterator[decl.RawDeclaration], error) {
	body, err := file.Body(ctx)
	if err != nil {
		return nil, err
	}
	lines := iter.NewIteratorFilter(
		iter.NewLineFileBodyCtx(ctx, body),
		decl.Filter[iter.Line](iter.FilterFunc[iter.Line](func(ctx context.Context, line iter.Line) bool {
			t := strings.TrimSpace(line.Text)
			return t != "" && !strings.HasPrefix(t, "#")
		})),
	)
	defer func() {
		_ = lines.Close(ctx)
	}()

	uri := file.Path(ctx)
	decls := []decl.RawDeclaration{}
	for {
		line, ok := lines.Next(ctx).Get()
		if !ok {
			break
		}
		decls = append(decls, decl.RawDeclaration{
			URI:       uri,
			Line:      line.Number,
			Signature: line.Text,
		})
	}
	return iter.NewSlice(decls), nil
}
