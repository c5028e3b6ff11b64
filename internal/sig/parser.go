// Package sig parses native tensor-library function declarations such as
//
//	fft(Tensor self, int64_t signal_ndim, bool normalized=false) -> Tensor
//
// into typed descriptors. Parsing is a single bottom-up pass per line with
// local backtracking; nothing is retained between calls and every line parses
// independently of every other.
package sig

import (
	"github.com/tensorbind/declc/internal/decl"
	"github.com/tensorbind/declc/internal/exc"
)

// Parse parses one full signature line into a function descriptor. The entire
// input must be consumed; trailing characters after the return type are an
// error. On failure the returned error is an exc.Exception carrying the
// absolute offset of the farthest point reached and a description of what was
// expected there.
func Parse(line string) (*decl.FunctionDecl, error) {
	s := newScanner(line)
	fn, ok := s.parseFunction()
	if !ok {
		return nil, s.err("")
	}
	if !s.eof() {
		s.fail(exc.CodeLexicalMismatch, "end of input")
		return nil, s.err("")
	}
	return fn, nil
}

// ParseType parses a single type descriptor, requiring full consumption of
// the input.
func ParseType(src string) (decl.Type, error) {
	s := newScanner(src)
	t, ok := s.parseType()
	if !ok {
		return nil, s.err("")
	}
	if !s.eof() {
		s.fail(exc.CodeLexicalMismatch, "end of input")
		return nil, s.err("")
	}
	return t, nil
}

// ParseDefaultValue parses a single default-value literal, requiring full
// consumption of the input. The document-traversal layer uses this for
// default-value text carried outside a signature line.
func ParseDefaultValue(src string) (decl.DefaultValue, error) {
	s := newScanner(src)
	v, ok := s.parseDefaultValue()
	if !ok {
		return nil, s.err("")
	}
	if !s.eof() {
		s.fail(exc.CodeLexicalMismatch, "end of input")
		return nil, s.err("")
	}
	return v, nil
}

// FunctionDecl = identifier "(" Params ")" "->" ReturnType
func (s *scanner) parseFunction() (*decl.FunctionDecl, bool) {
	name, ok := s.identifier()
	if !ok {
		return nil, false
	}
	params, ok := commaSeparated(s, "(", func() (decl.Param, bool) { return s.parseParam() }, ")")
	if !ok {
		return nil, false
	}
	if !s.literal("->") {
		return nil, false
	}
	ret, ok := s.parseReturnType()
	if !ok {
		return nil, false
	}
	return &decl.FunctionDecl{Name: name, Params: params, Return: ret}, true
}

// Param = "*" | Type identifier [ "=" DefaultValue ]
//
// The default value is parsed independently of the declared type; no
// cross-check happens here.
func (s *scanner) parseParam() (decl.Param, bool) {
	if s.literal("*") {
		return decl.VariadicMarker{}, true
	}
	t, ok := s.parseType()
	if !ok {
		return nil, false
	}
	name, ok := s.identifier()
	if !ok {
		return nil, false
	}
	var def decl.DefaultValue
	if s.literal("=") {
		def, ok = s.parseDefaultValue()
		if !ok {
			return nil, false
		}
	}
	return decl.Parameter{Type: t, Name: name, Default: def}, true
}

// ReturnType = Type [identifier] | "(" Type [identifier] { "," Type [identifier] } ")"
//
// Element names are parsed and discarded; only the ordered type sequence
// survives as a tuple.
func (s *scanner) parseReturnType() (decl.Type, bool) {
	save := s.mark()
	if s.literal("(") {
		elems := []decl.Type{}
		for {
			t, ok := s.parseType()
			if !ok {
				s.reset(save)
				return nil, false
			}
			elems = append(elems, t)
			if !s.eof() && isIdentStart(s.src[s.pos]) {
				_, _ = s.identifier()
			}
			if s.literal(",") {
				continue
			}
			if s.closer(")") {
				return decl.TupleType{Elems: elems}, true
			}
			s.reset(save)
			return nil, false
		}
	}
	t, ok := s.parseType()
	if !ok {
		return nil, false
	}
	if !s.eof() && isIdentStart(s.src[s.pos]) {
		_, _ = s.identifier()
	}
	return t, true
}

// Type tries each alternative in the documented order: tuple first, then the
// tensor and scalar families most-specific first, base C scalars, the
// std::array and std::string forms, and the remaining literal keywords.
func (s *scanner) parseType() (decl.Type, bool) {
	save := s.mark()
	if t, ok := s.parseTupleType(); ok {
		return t, true
	}
	for _, kw := range tensorKeywords {
		if !s.literal(kw.spelling) {
			continue
		}
		if kw.kind == decl.TensorKindIntList {
			dims, ok := s.parseIntListDims()
			if !ok {
				s.reset(save)
				return nil, false
			}
			return decl.TensorType{Kind: kw.kind, Dims: dims}, true
		}
		return decl.TensorType{Kind: kw.kind}, true
	}
	for _, kw := range scalarCKeywords {
		if s.literal(kw.spelling) {
			return decl.ScalarCType{Kind: kw.kind}, true
		}
	}
	if t, ok := s.parseFixedArrayType(); ok {
		return t, true
	}
	if s.literal("std::string") {
		return decl.StringType{}, true
	}
	if s.literal("Device") {
		return decl.DeviceType{}, true
	}
	if s.literal("Generator*") {
		return decl.PointerType{To: decl.GeneratorType{}}, true
	}
	if s.literal("Storage") {
		return decl.StorageType{}, true
	}
	return nil, false
}

// TupleType = "(" Type { "," Type } ")"
func (s *scanner) parseTupleType() (decl.Type, bool) {
	save := s.mark()
	if !s.literal("(") {
		return nil, false
	}
	elems := []decl.Type{}
	for {
		t, ok := s.parseType()
		if !ok {
			s.reset(save)
			return nil, false
		}
		elems = append(elems, t)
		if s.literal(",") {
			continue
		}
		if s.closer(")") {
			return decl.TupleType{Elems: elems}, true
		}
		s.reset(save)
		return nil, false
	}
}

// IntListDims = [ "[" int { "," int } "]" ]
//
// A missing bracket list is the bare IntList; present brackets must hold a
// non-empty dimension list, taken verbatim left to right.
func (s *scanner) parseIntListDims() ([]int64, bool) {
	if !s.literal("[") {
		return nil, true
	}
	dims := []int64{}
	for {
		n, ok := s.unsigned()
		if !ok {
			return nil, false
		}
		dims = append(dims, n)
		if s.literal(",") {
			continue
		}
		if s.closer("]") {
			return dims, true
		}
		return nil, false
	}
}

// FixedArrayType = "std::array<" ScalarCType "," int ">"
//
// The element must resolve to a scalar C type or the whole construct fails;
// the grammar cannot express arrays of anything else.
func (s *scanner) parseFixedArrayType() (decl.Type, bool) {
	save := s.mark()
	if !s.literal("std::array<") {
		return nil, false
	}
	var elem decl.ScalarCKind
	found := false
	for _, kw := range scalarCKeywords {
		if s.literal(kw.spelling) {
			elem = kw.kind
			found = true
			break
		}
	}
	if !found {
		s.fail(exc.CodeUnsupportedElement, "scalar C element type")
		s.reset(save)
		return nil, false
	}
	if !s.literal(",") {
		s.reset(save)
		return nil, false
	}
	n, ok := s.unsigned()
	if !ok {
		s.reset(save)
		return nil, false
	}
	if !s.closer(">") {
		s.reset(save)
		return nil, false
	}
	return decl.FixedArrayType{Elem: elem, Len: n}, true
}

// DefaultValue = float | int | bool | "nullptr" | "None" | "Reduction::Mean"
// | "at::kLong" | "{}" | "{0,1}"
//
// Float is tried before int so that 0.125 is not truncated to an integer
// prefix. Both dictionary spellings yield the same empty-dict value.
func (s *scanner) parseDefaultValue() (decl.DefaultValue, bool) {
	if v, ok := s.float(); ok {
		return decl.DefaultDouble{Value: v}, true
	}
	if v, ok := s.signedInt(); ok {
		return decl.DefaultInt{Value: v}, true
	}
	for _, kw := range boolKeywords {
		if s.literal(kw.spelling) {
			return decl.DefaultBool{Value: kw.value}, true
		}
	}
	if s.literal("nullptr") {
		return decl.DefaultNullPtr{}, true
	}
	if s.literal("None") {
		return decl.DefaultNone{}, true
	}
	if s.literal("Reduction::Mean") {
		return decl.DefaultEnum{Constant: decl.EnumReductionMean}, true
	}
	if s.literal("at::kLong") {
		return decl.DefaultEnum{Constant: decl.EnumAtKLong}, true
	}
	if s.literal("{}") {
		return decl.DefaultEmptyDict{}, true
	}
	if s.literal("{0,1}") {
		return decl.DefaultEmptyDict{}, true
	}
	return nil, false
}

// commaSeparated parses a delimited, comma-separated, possibly empty list of
// nodes.
func commaSeparated[N any](s *scanner, tOpen string, parse func() (N, bool), tClose string) ([]N, bool) {
	save := s.mark()
	if !s.literal(tOpen) {
		return nil, false
	}
	values := []N{}
	if s.literal(tClose) {
		return values, true
	}
	for {
		v, ok := parse()
		if !ok {
			s.reset(save)
			return nil, false
		}
		values = append(values, v)
		if s.literal(",") {
			continue
		}
		if s.closer(tClose) {
			return values, true
		}
		s.reset(save)
		return nil, false
	}
}
