package utils

import (
	"testing"

	"gotest.tools/assert"
)

type caller struct{}

func (caller) whoAmI() string {
	return GetCallerFunctionName(2)
}

// whoCalledMe is small enough to be inlined into its caller.
func whoCalledMe() string {
	return GetCallerFunctionName(3)
}

func TestGetCallerFunctionName(t *testing.T) {
	assert.Equal(t, GetCallerFunctionName(1), "GetCallerFunctionName")
	assert.Equal(t, GetCallerFunctionName(2), "TestGetCallerFunctionName")
	assert.Equal(t, caller{}.whoAmI(), "whoAmI")
	assert.Equal(t, GetCallerFunctionName(100), "<unknown>")
}

func TestGetCallerFunctionNameThroughInlinedHelper(t *testing.T) {
	assert.Equal(t, whoCalledMe(), "TestGetCallerFunctionNameThroughInlinedHelper")
	assert.Equal(t, caller{}.whoAmI(), "whoAmI")
}
