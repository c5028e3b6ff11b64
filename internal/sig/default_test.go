// © 2024 Tensorbind Labs
//
// SPDX-License-Identifier: Apache-2.0

package sig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tensorbind/declc/internal/decl"
)

func TestParseDefaultValue(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		input    string
		expected decl.DefaultValue
	}{
		{name: "unsigned integer", input: "100", expected: decl.DefaultInt{Value: 100}},
		{name: "negative integer", input: "-100", expected: decl.DefaultInt{Value: -100}},
		{name: "zero", input: "0", expected: decl.DefaultInt{Value: 0}},
		{name: "plain double", input: "0.125", expected: decl.DefaultDouble{Value: 0.125}},
		{name: "scientific notation", input: "1e-8", expected: decl.DefaultDouble{Value: 1.0e-8}},
		{name: "scientific notation with fraction", input: "1.5e10", expected: decl.DefaultDouble{Value: 1.5e10}},
		{name: "negative double", input: "-0.5", expected: decl.DefaultDouble{Value: -0.5}},
		{name: "lowercase true", input: "true", expected: decl.DefaultBool{Value: true}},
		{name: "capitalized true", input: "True", expected: decl.DefaultBool{Value: true}},
		{name: "lowercase false", input: "false", expected: decl.DefaultBool{Value: false}},
		{name: "capitalized false", input: "False", expected: decl.DefaultBool{Value: false}},
		{name: "null pointer", input: "nullptr", expected: decl.DefaultNullPtr{}},
		{name: "none", input: "None", expected: decl.DefaultNone{}},
		{name: "reduction mean", input: "Reduction::Mean", expected: decl.DefaultEnum{Constant: decl.EnumReductionMean}},
		{name: "at kLong", input: "at::kLong", expected: decl.DefaultEnum{Constant: decl.EnumAtKLong}},
		{name: "empty dict", input: "{}", expected: decl.DefaultEmptyDict{}},
		{name: "zero one dict", input: "{0,1}", expected: decl.DefaultEmptyDict{}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			val, err := ParseDefaultValue(testCase.input)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, val)
		})
	}
}

// The two dictionary spellings collapse to one semantic value. That is the
// contract, not an accident: assert equality, not distinctness.
func TestDictSpellingsCollapse(t *testing.T) {
	t.Parallel()
	empty, err := ParseDefaultValue("{}")
	require.NoError(t, err)
	zeroOne, err := ParseDefaultValue("{0,1}")
	require.NoError(t, err)
	require.Equal(t, empty, zeroOne)
}

func TestParseDefaultValueErrors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "bare identifier", input: "foo"},
		{name: "unknown enum constant", input: "Reduction::Sum"},
		{name: "other dict literal", input: "{1,2}"},
		{name: "trailing characters", input: "100x"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			val, err := ParseDefaultValue(testCase.input)
			require.Error(t, err)
			require.Nil(t, val)
		})
	}
}
