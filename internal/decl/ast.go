package decl

import "fmt"

// Type is the descriptor for a parsed type occurring in a parameter or return
// position. The set of implementations is closed; consumers are expected to
// switch exhaustively.
type Type interface {
	typeNode()
}

type TensorKind uint16

const (
	TensorKindUnknown        TensorKind = 0
	TensorKindScalar         TensorKind = 1
	TensorKindTensor         TensorKind = 2
	TensorKindOptionalTensor TensorKind = 3
	TensorKindTensorOptions  TensorKind = 4
	TensorKindTensorList     TensorKind = 5
	TensorKindIndexTensor    TensorKind = 6
	TensorKindBoolTensor     TensorKind = 7
	TensorKindOptionalBool   TensorKind = 8
	TensorKindIntList        TensorKind = 9
	TensorKindOptionalScalar TensorKind = 10
	TensorKindScalarType     TensorKind = 11
	TensorKindSparseRef      TensorKind = 12
)

func (k TensorKind) String() string {
	switch k {
	case TensorKindScalar:
		return "Scalar"
	case TensorKindTensor:
		return "Tensor"
	case TensorKindOptionalTensor:
		return "Tensor?"
	case TensorKindTensorOptions:
		return "TensorOptions"
	case TensorKindTensorList:
		return "TensorList"
	case TensorKindIndexTensor:
		return "IndexTensor"
	case TensorKindBoolTensor:
		return "BoolTensor"
	case TensorKindOptionalBool:
		return "BoolTensor?"
	case TensorKindIntList:
		return "IntList"
	case TensorKindOptionalScalar:
		return "Scalar?"
	case TensorKindScalarType:
		return "ScalarType"
	case TensorKindSparseRef:
		return "SparseTensorRef"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type ScalarCKind uint16

const (
	ScalarCUnknown       ScalarCKind = 0
	ScalarCBool          ScalarCKind = 1
	ScalarCVoid          ScalarCKind = 2
	ScalarCDouble        ScalarCKind = 3
	ScalarCInt64         ScalarCKind = 4
	ScalarCOptionalInt64 ScalarCKind = 5
)

func (k ScalarCKind) String() string {
	switch k {
	case ScalarCBool:
		return "bool"
	case ScalarCVoid:
		return "void"
	case ScalarCDouble:
		return "double"
	case ScalarCInt64:
		return "int64_t"
	case ScalarCOptionalInt64:
		return "int64_t?"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

// TensorType covers the tensor-family variants. Optionality is part of the
// kind, never a PointerType wrapper. Dims is populated only for the
// bracketed IntList form and holds the bracket contents verbatim, left to
// right; a nil Dims is the bare IntList.
type TensorType struct {
	Kind TensorKind
	Dims []int64
}

// ScalarCType is a base C scalar type.
type ScalarCType struct {
	Kind ScalarCKind
}

// FixedArrayType is the std::array<elem,len> form. Elem is restricted to
// scalar C kinds; the grammar cannot express arrays of anything else.
type FixedArrayType struct {
	Elem ScalarCKind
	Len  int64
}

// PointerType wraps a pointee type. The grammar only produces it for
// Generator*.
type PointerType struct {
	To Type
}

type DeviceType struct{}

type GeneratorType struct{}

type StorageType struct{}

type StringType struct{}

// TupleType is an ordered sequence of element types. Element names present in
// the source are discarded during parsing.
type TupleType struct {
	Elems []Type
}

func (TensorType) typeNode()     {}
func (ScalarCType) typeNode()    {}
func (FixedArrayType) typeNode() {}
func (PointerType) typeNode()    {}
func (DeviceType) typeNode()     {}
func (GeneratorType) typeNode()  {}
func (StorageType) typeNode()    {}
func (StringType) typeNode()     {}
func (TupleType) typeNode()      {}

// DefaultValue is a parsed default-value literal. Closed set, same contract
// as Type.
type DefaultValue interface {
	defaultValue()
}

type EnumConstant uint16

const (
	EnumUnknown       EnumConstant = 0
	EnumAtKLong       EnumConstant = 1
	EnumReductionMean EnumConstant = 2
)

func (e EnumConstant) String() string {
	switch e {
	case EnumAtKLong:
		return "at::kLong"
	case EnumReductionMean:
		return "Reduction::Mean"
	default:
		return fmt.Sprintf("unknown-%d", e)
	}
}

type DefaultBool struct {
	Value bool
}

type DefaultInt struct {
	Value int64
}

type DefaultDouble struct {
	Value float64
}

// DefaultEmptyDict is produced by both the {} and {0,1} spellings. The two
// collapse to one value on purpose; downstream generation depends on it.
type DefaultEmptyDict struct{}

type DefaultEnum struct {
	Constant EnumConstant
}

type DefaultNullPtr struct{}

type DefaultNone struct{}

func (DefaultBool) defaultValue()      {}
func (DefaultInt) defaultValue()       {}
func (DefaultDouble) defaultValue()    {}
func (DefaultEmptyDict) defaultValue() {}
func (DefaultEnum) defaultValue()      {}
func (DefaultNullPtr) defaultValue()   {}
func (DefaultNone) defaultValue()      {}

// Param is either a named Parameter or the bare * VariadicMarker separating
// positional from keyword-only parameters.
type Param interface {
	paramNode()
}

type Parameter struct {
	Type Type
	Name string
	// Default is nil when the parameter has no default value.
	Default DefaultValue
}

type VariadicMarker struct{}

func (Parameter) paramNode()      {}
func (VariadicMarker) paramNode() {}

// FunctionDecl is the descriptor for one parsed signature line.
type FunctionDecl struct {
	Name   string
	Params []Param
	Return Type
}
