// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"errors"
	"io"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
)

// Extractor pulls the raw declaration entries out of one document format.
// Extractors do not parse signatures; they only locate them and record where
// each one came from. Malformed entries are reported through the given
// reporter and skipped so that a single bad entry never hides the rest of the
// document.
type Extractor interface {
	Extract(ctx context.Context, r exc.Reporter, file decl.File) (decl.Iterator[decl.RawDeclaration], error)
}

func DefaultExtractors() map[decl.FileKind]Extractor {
	return map[decl.FileKind]Extractor{
		decl.FileKindDeclYAML: &ExtractorYAML{},
		decl.FileKindDeclText: &ExtractorText{},
	}
}

func readAll(ctx context.Context, body decl.FileBody) ([]byte, error) {
	var out []byte
	for {
		buf, err := body.Read(ctx, 4096)
		out = append(out, buf...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
