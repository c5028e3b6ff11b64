// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package sig

import "github.com/tensorbind/declc/internal/decl"

// The keyword tables below are tried top to bottom. Literal matching has no
// word boundary check, so within each family every spelling that is a prefix
// of another must come after the longer one. The order is load-bearing:
// getting it wrong misclassifies types silently instead of failing.

type tensorKeyword struct {
	spelling string
	kind     decl.TensorKind
}

var tensorKeywords = []tensorKeyword{
	{"IndexTensor", decl.TensorKindIndexTensor},
	{"BoolTensor?", decl.TensorKindOptionalBool},
	{"BoolTensor", decl.TensorKindBoolTensor},
	{"TensorOptions", decl.TensorKindTensorOptions},
	{"Tensor?", decl.TensorKindOptionalTensor},
	{"TensorList", decl.TensorKindTensorList},
	{"Tensor", decl.TensorKindTensor},
	{"IntList", decl.TensorKindIntList},
	{"ScalarType", decl.TensorKindScalarType},
	{"Scalar?", decl.TensorKindOptionalScalar},
	{"SparseTensorRef", decl.TensorKindSparseRef},
	{"Scalar", decl.TensorKindScalar},
}

type scalarCKeyword struct {
	spelling string
	kind     decl.ScalarCKind
}

var scalarCKeywords = []scalarCKeyword{
	{"bool", decl.ScalarCBool},
	{"void", decl.ScalarCVoid},
	{"double", decl.ScalarCDouble},
	{"int64_t?", decl.ScalarCOptionalInt64},
	{"int64_t", decl.ScalarCInt64},
}

type boolKeyword struct {
	spelling string
	value    bool
}

// Both capitalizations of the initial letter are accepted.
var boolKeywords = []boolKeyword{
	{"true", true},
	{"True", true},
	{"false", false},
	{"False", false},
}
