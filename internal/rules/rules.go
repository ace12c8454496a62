// Package rules loads scripted keyword sources from a Lua rules file.
//
// A rules file returns a list of group tables:
//
//	return {
//	  { name = "todo", color = "#ff5555", case_sensitive = true,
//	    words = { "TODO", "FIXME", "HACK" } },
//	}
//
// Groups produced here are appended to the configured groups, after
// them in declaration (and therefore precedence) order. The Lua state is
// sandboxed: only the base, table and string libraries are opened, and
// file or code loading functions are removed.
package rules

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keylight/internal/config"
)

// ErrBadResult indicates the script did not return a group list.
var ErrBadResult = errors.New("rules script must return a list of group tables")

// DefaultColor is used for groups that do not set one.
const DefaultColor = "#b8860b"

// Load evaluates the Lua rules file at path and returns the keyword
// groups it defines. Each group gets a fresh stable ID.
func Load(path string) ([]config.KeywordGroup, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	return evaluate(string(src), path)
}

func evaluate(src, name string) ([]config.KeywordGroup, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSandboxedLibs(L)

	fn, err := L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("parsing rules %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("running rules %s: %w", name, err)
	}

	ret, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return nil, ErrBadResult
	}

	var groups []config.KeywordGroup
	var convErr error
	ret.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		tbl, ok := v.(*lua.LTable)
		if !ok {
			convErr = ErrBadResult
			return
		}
		groups = append(groups, groupFromTable(tbl))
	})
	if convErr != nil {
		return nil, convErr
	}
	return groups, nil
}

func groupFromTable(tbl *lua.LTable) config.KeywordGroup {
	g := config.KeywordGroup{
		ID:      uuid.NewString(),
		Color:   DefaultColor,
		Enabled: true,
	}
	if s, ok := tbl.RawGetString("name").(lua.LString); ok {
		g.Name = string(s)
	}
	if s, ok := tbl.RawGetString("color").(lua.LString); ok {
		g.Color = string(s)
	}
	if b, ok := tbl.RawGetString("case_sensitive").(lua.LBool); ok {
		g.CaseSensitive = bool(b)
	}
	if b, ok := tbl.RawGetString("enabled").(lua.LBool); ok {
		g.Enabled = bool(b)
	}
	if words, ok := tbl.RawGetString("words").(*lua.LTable); ok {
		words.ForEach(func(_, w lua.LValue) {
			if s, ok := w.(lua.LString); ok {
				g.Words = append(g.Words, string(s))
			}
		})
	}
	return g
}

// openSandboxedLibs opens only the libraries rule scripts need and
// strips the loaders that could pull in arbitrary code.
func openSandboxedLibs(L *lua.LState) {
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}
