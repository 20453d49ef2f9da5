// Package callsite recovers the location and, when the source file is available, the literal
// argument text of an assertion call, so that failure diagnostics can show the expression the
// test author wrote rather than only its value.
package callsite

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"runtime"
	"strings"
	"sync"
)

// Location identifies the source position of a call.
type Location struct {
	Function string
	File     string
	Line     int
}

// Caller returns the location of the function that is skip frames above the caller of Caller.
// Caller(0) describes the function that called Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{Function: "?", File: "?"}
	}
	loc := Location{File: file, Line: line, Function: "?"}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = shortFunctionName(fn.Name())
	}
	return loc
}

// shortFunctionName strips the import path, leaving e.g. "selftest.(*failingCase).Run".
func shortFunctionName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

type parsedFile struct {
	fset *token.FileSet
	file *ast.File
}

var (
	cache     = map[string]*parsedFile{}
	cacheLock sync.Mutex
)

func load(path string) *parsedFile {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	if pf, ok := cache[path]; ok {
		return pf
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	var pf *parsedFile
	if err == nil {
		pf = &parsedFile{fset: fset, file: f}
	}
	cache[path] = pf // a nil entry remembers that the file can't be used
	return pf
}

// Args returns the source text of each argument of the call to a function or method named
// funcName that spans the given location. If such calls are nested, the innermost one wins.
// The second return value is false if the source is unavailable, no such call was found, or the
// line holds several unrelated matching calls; a location carries no column, so there is no way
// to tell which of those was meant.
func Args(loc Location, funcName string) ([]string, bool) {
	pf := load(loc.File)
	if pf == nil {
		return nil, false
	}
	var candidates []*ast.CallExpr
	ast.Inspect(pf.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		start := pf.fset.Position(call.Pos()).Line
		end := pf.fset.Position(call.End()).Line
		if loc.Line < start || loc.Line > end {
			return false
		}
		if calleeName(call.Fun) == funcName {
			candidates = append(candidates, call)
		}
		return true
	})
	best := innermost(candidates)
	if best == nil {
		return nil, false
	}
	ret := make([]string, 0, len(best.Args))
	for _, arg := range best.Args {
		ret = append(ret, render(pf.fset, arg))
	}
	return ret, true
}

// innermost drops every call that encloses another candidate. It returns nil unless exactly one
// call is left.
func innermost(calls []*ast.CallExpr) *ast.CallExpr {
	var found *ast.CallExpr
	for i, c := range calls {
		enclosing := false
		for j, other := range calls {
			if i != j && c.Pos() <= other.Pos() && other.End() <= c.End() {
				enclosing = true
				break
			}
		}
		if enclosing {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr: // generic instantiation, e.g. Panics[MyError](...)
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	}
	return ""
}

var printerConfig = printer.Config{Mode: printer.UseSpaces, Tabwidth: 4}

func render(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printerConfig.Fprint(&buf, fset, expr); err != nil {
		return "?"
	}
	return buf.String()
}

// CallerOutside is like Caller, but skips any further frames that belong to functions whose
// fully qualified name starts with one of the given prefixes. This is how diagnostics raised from
// inside a third-party assertion library are attributed to the test code that called it.
func CallerOutside(skip int, prefixes ...string) Location {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !hasAnyPrefix(frame.Function, prefixes) {
			return Location{
				Function: shortFunctionName(frame.Function),
				File:     frame.File,
				Line:     frame.Line,
			}
		}
		if !more {
			break
		}
	}
	return Caller(skip + 1)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
