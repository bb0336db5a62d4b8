package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM restricts a Lua VM so that manifests stay declarative.
// Removed capabilities:
//   - process and environment access (os library)
//   - filesystem access (io library)
//   - code loading (require, dofile, loadfile, load, loadstring)
//   - the debug library, which could bypass the sandbox
//
// The string, table and math libraries and the basic utilities
// (type, tostring, pairs, ...) remain available.
func sandboxLuaVM(L *lua.LState) {
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)
	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("debug", lua.LNil)
}

// newSandboxedVM creates the Lua state used for manifest parsing.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
