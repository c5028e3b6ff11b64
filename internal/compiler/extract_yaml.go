// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
	"github.com/tensorbind/declc/internal/iter"
)

// ExtractorYAML handles declaration documents in YAML form. The document is a
// sequence of mappings where each entry carries the signature under the func
// key (name is accepted as an alias) and an optional variants key. The
// variants value is carried through without interpretation.
type ExtractorYAML struct{}

func (e *ExtractorYAML) Extract(ctx context.Context, r exc.Reporter, file decl.File) (decl.Iterator[decl.RawDeclaration], error) {
	body, err := file.Body(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = body.Close(ctx)
	}()
	buf, err := readAll(ctx, body)
	if err != nil {
		return nil, err
	}

	uri := file.Path(ctx)
	var root yaml.Node
	if err = yaml.Unmarshal(buf, &root); err != nil {
		return nil, exc.Wrap(exc.Location{URI: uri}, exc.CodeMalformedEntry, err)
	}
	if len(root.Content) < 1 {
		return iter.NewSlice([]decl.RawDeclaration{}), nil
	}
	seq := root.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, exc.New(
			exc.Location{URI: uri, Location: decl.Location{Line: int32(seq.Line)}},
			exc.CodeMalformedEntry,
			"declaration document must be a sequence of entries",
		)
	}

	decls := []decl.RawDeclaration{}
	for _, entry := range seq.Content {
		raw, err := e.entry(uri, entry)
		if err != nil {
			if ee, ok := err.(exc.Exception); ok {
				_ = r.Report(ee)
			} else {
				_ = r.Report(exc.WrapUnknown(exc.Location{URI: uri}, err))
			}
			continue
		}
		decls = append(decls, raw)
	}
	return iter.NewSlice(decls), nil
}

func (e *ExtractorYAML) entry(uri string, node *yaml.Node) (decl.RawDeclaration, error) {
	raw := decl.RawDeclaration{URI: uri, Line: int32(node.Line)}
	if node.Kind != yaml.MappingNode {
		return raw, exc.New(
			exc.Location{URI: uri, Location: decl.Location{Line: raw.Line}},
			exc.CodeMalformedEntry,
			"entry must be a mapping",
		)
	}
	// Mapping content alternates key, value.
	for x := 0; x+1 < len(node.Content); x = x + 2 {
		key := node.Content[x]
		val := node.Content[x+1]
		switch key.Value {
		case "func", "name":
			if raw.Signature == "" {
				raw.Signature = val.Value
				raw.Line = int32(val.Line)
			}
		case "variants":
			raw.Variants = variantsValue(val)
		}
	}
	if raw.Signature == "" {
		return raw, exc.New(
			exc.Location{URI: uri, Location: decl.Location{Line: raw.Line}},
			exc.CodeMalformedEntry,
			"entry has no func or name key",
		)
	}
	return raw, nil
}

// variantsValue flattens the variants value to a string. Both scalar and
// sequence forms appear in the wild.
func variantsValue(node *yaml.Node) string {
	if node.Kind != yaml.SequenceNode {
		return node.Value
	}
	parts := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		parts = append(parts, item.Value)
	}
	return strings.Join(parts, ", ")
}
