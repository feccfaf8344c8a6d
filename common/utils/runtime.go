package utils

import (
	"runtime"
	"strings"
)

// GetCallerFunctionName returns the bare name of the function skip frames up
// the stack. Method receivers and package paths are stripped, so
// "(*CatalogService).ListProducts" becomes "ListProducts". Inlined callers
// are resolved through runtime.CallersFrames.
func GetCallerFunctionName(skip int) string {
	pc := make([]uintptr, 1)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return "<unknown>"
	}
	frame, _ := runtime.CallersFrames(pc[:n]).Next()
	name := frame.Function
	if name == "" {
		return "<unknown>"
	}
	if i := strings.LastIndexByte(name, '.'); i != -1 {
		name = name[i+1:]
	}
	return name
}
