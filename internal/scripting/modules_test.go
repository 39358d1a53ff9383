package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/rasaratnakara/internal/scripting"
)

func runScript(t *testing.T, mgr *scripting.Manager, luaSrc, hook string, args ...lua.LValue) lua.LValue {
	t.Helper()
	require.NoError(t, mgr.Load("modtest", luaFS(map[string]string{"test.lua": luaSrc}), "scripts"))
	return mgr.CallHook("modtest", hook, args...)
}

func TestEngineLog_AllLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(0, zap.New(core))
	defer mgr.Close()

	runScript(t, mgr, `
		function do_all_logs()
			engine.log.debug("d")
			engine.log.info("i")
			engine.log.warn("w")
			engine.log.error("e")
		end
	`, "do_all_logs")

	levels := map[string]bool{}
	for _, e := range logs.FilterField(zap.String("source", "lua")).All() {
		levels[e.Level.String()] = true
	}
	assert.True(t, levels["debug"], "expected debug log")
	assert.True(t, levels["info"], "expected info log")
	assert.True(t, levels["warn"], "expected warn log")
	assert.True(t, levels["error"], "expected error log")
}

func TestEngineHasItem_UsesInjectedCallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	mgr.HasItem = func(item string) bool { return item == "gold" }
	assert.Equal(t, lua.LTrue, runScript(t, mgr, `function f() return engine.has_item("gold") end`, "f"))
	assert.Equal(t, lua.LFalse, runScript(t, mgr, `function f() return engine.has_item("fish") end`, "f"))
}

func TestEngineFlagAndRoom(t *testing.T) {
	mgr, _ := newTestManager(t)
	mgr.Flag = func(name string) int {
		if name == "bell_rung" {
			return 2
		}
		return 0
	}
	mgr.CurrentRoom = func() string { return "south_2" }
	ret := runScript(t, mgr, `function f() return engine.room() .. ":" .. engine.flag("bell_rung") end`, "f")
	assert.Equal(t, lua.LString("south_2:2"), ret)
}

func TestEngine_NilCallbacksReportDefaults(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret := runScript(t, mgr, `
		function f()
			if engine.has_item("x") then return "held" end
			return engine.room() .. engine.flag("n")
		end
	`, "f")
	assert.Equal(t, lua.LString("0"), ret)
}
