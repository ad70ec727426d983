package core

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Location describes the call site of a single log call
type Location struct {
	File     string
	Line     int
	Function string
	Defined  bool
}

// Here returns a Location for an explicit file and line. It is the
// counterpart of Caller for code that already knows its position, such
// as generated code or bridges from other logging APIs.
func Here(file string, line int) Location {
	return Location{File: file, Line: line, Defined: file != ""}
}

// ShortFile returns the base name of the file
func (l Location) ShortFile() string {
	if l.File == "" {
		return ""
	}
	return filepath.Base(l.File)
}

// ShortFunction returns the function name without its package path
func (l Location) ShortFunction() string {
	fn := l.Function
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		fn = fn[i+1:]
	}
	return fn
}

// Caller retrieves caller information. skip is the number of stack
// frames to ascend, with 0 identifying the caller of Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return Location{
		File:     file,
		Line:     line,
		Function: funcName,
		Defined:  true,
	}
}
