package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine table into L:
//
//	engine.has_item(id) -> bool
//	engine.flag(name)   -> number
//	engine.room()       -> string
//	engine.log.{debug,info,warn,error}(msg)
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "has_item", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		held := false
		if m.HasItem != nil {
			held = m.HasItem(item)
		}
		L.Push(lua.LBool(held))
		return 1
	}))

	L.SetField(engine, "flag", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		v := 0
		if m.Flag != nil {
			v = m.Flag(name)
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	L.SetField(engine, "room", L.NewFunction(func(L *lua.LState) int {
		room := ""
		if m.CurrentRoom != nil {
			room = m.CurrentRoom()
		}
		L.Push(lua.LString(room))
		return 1
	}))

	logTbl := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, fn := range levels {
		fn := fn
		L.SetField(logTbl, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logTbl)

	L.SetGlobal("engine", engine)
}
