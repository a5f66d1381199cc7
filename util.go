package event

import (
	"path/filepath"
	"runtime"
)

// CallSite identifies the code that fired an event.
type CallSite struct {
	File     string
	Function string
	Line     int
}

// Caller returns the call site depth frames above its caller.
func Caller(depth int) CallSite {
	pc, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return CallSite{}
	}
	site := CallSite{File: filepath.Base(file), Line: line}
	if details := runtime.FuncForPC(pc); details != nil {
		site.Function = details.Name()
	}
	return site
}
