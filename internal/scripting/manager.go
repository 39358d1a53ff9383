package scripting

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// GlobalScope is the reserved key for scripts shared by every region.
// CallHook falls back to this VM when a region has no VM of its own.
const GlobalScope = "__global__"

// Hook names called by the game session.
const (
	// HookOnMeditate receives (room_key, region) and may return a hint string.
	HookOnMeditate = "on_meditate"
	// HookOnEnter receives (room_key, region) and may return a verse string.
	HookOnEnter = "on_enter"
)

// Manager owns one sandboxed LState per scope and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook after all Load calls complete.
// Each LState is single-threaded; the mutex serializes calls.
type Manager struct {
	mu        sync.Mutex
	states    map[string]*lua.LState
	instLimit int
	logger    *zap.Logger

	// Injected after construction. nil = engine.* queries report defaults.
	HasItem     func(item string) bool
	Flag        func(name string) int
	CurrentRoom func() string
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 = DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states:    make(map[string]*lua.LState),
		instLimit: instLimit,
		logger:    logger,
	}
}

// Load creates a sandboxed VM for scope, registers all engine.* modules,
// then executes every *.lua file directly under dir in fsys in
// lexicographic order. Loading a scope again replaces its VM.
//
// Precondition: scope must be non-empty; dir must be readable in fsys.
// Postcondition: VM is registered; returns error on Lua load failure.
func (m *Manager) Load(scope string, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", dir, scope, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)

	for _, p := range luaFiles {
		if err := m.doFile(L, fsys, p); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", p, scope, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[scope]; ok {
		old.Close()
	}
	m.states[scope] = L
	m.mu.Unlock()

	m.logger.Debug("scripting: scope loaded",
		zap.String("scope", scope),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

func (m *Manager) doFile(L *lua.LState, fsys fs.FS, p string) error {
	src, err := fs.ReadFile(fsys, p)
	if err != nil {
		return err
	}
	fn, err := L.Load(bytes.NewReader(src), p)
	if err != nil {
		return err
	}
	release := Budget(L, m.instLimit)
	defer release()
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// CallHook calls the named Lua global function in scope's VM. When the scope
// has no VM, or its VM does not define the hook, the global VM is tried.
// Returns LNil if no VM defines the hook. Lua runtime errors, including an exhausted
// instruction budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[scope]
	if !ok {
		L = m.states[GlobalScope]
	}
	if L == nil {
		return lua.LNil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil && ok && scope != GlobalScope {
		if g := m.states[GlobalScope]; g != nil {
			L = g
			fn = L.GetGlobal(hook)
		}
	}
	if fn == lua.LNil {
		return lua.LNil
	}

	release := Budget(L, m.instLimit)
	defer release()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// Text calls hook with string arguments and returns its result when the hook
// returned a non-empty string.
func (m *Manager) Text(scope, hook string, args ...string) (string, bool) {
	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = lua.LString(a)
	}
	ret := m.CallHook(scope, hook, largs...)
	s, ok := ret.(lua.LString)
	if !ok || s == "" {
		return "", false
	}
	return string(s), true
}

// Scopes returns the loaded scope keys in lexicographic order.
func (m *Manager) Scopes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.states))
	for k := range m.states {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, L := range m.states {
		L.Close()
		delete(m.states, k)
	}
}
