package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// Mod is one loaded Lua file. Its name is the provider of every override it
// registers.
//
// A Mod's LState is single-threaded; calls into it are serialized.
type Mod struct {
	Name string

	mu         sync.Mutex
	L          *lua.LState
	limit      int
	logger     *zap.Logger
	overridden []formula.Name
	closed     bool
}

var errClosed = errors.New("mod is unloaded")

// call invokes fn under the instruction budget and returns its first result.
// args builds the arguments inside the state's lock.
func (m *Mod) call(fn *lua.LFunction, args func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return lua.LNil, errClosed
	}
	err := WithBudget(m.L, m.limit, func() error {
		return m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args(m.L)...)
	})
	if err != nil {
		return lua.LNil, err
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret, nil
}

// Manager owns the loaded mods and the formula registry they override.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	mods     map[string]*Mod
	formulas *formula.Registry
	limit    int
	logger   *zap.Logger
}

// NewManager creates a Manager that registers overrides into formulas.
//
// Precondition: formulas and logger must be non-nil; instLimit >= 0, where 0
// selects DefaultInstructionLimit.
// Postcondition: Returns a non-nil Manager with no mods loaded.
func NewManager(formulas *formula.Registry, logger *zap.Logger, instLimit int) *Manager {
	if formulas == nil || logger == nil {
		panic("scripting.NewManager: formulas and logger must not be nil")
	}
	return &Manager{
		mods:     make(map[string]*Mod),
		formulas: formulas,
		limit:    effectiveLimit(instLimit),
		logger:   logger,
	}
}

// LoadDir loads every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns the first load failure; mods loaded before it stay loaded.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading mod dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	for _, path := range files {
		if err := m.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads one mod. The mod is named after the file without its extension.
func (m *Manager) LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scripting: reading mod %q: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m.LoadString(name, string(src))
}

// LoadString loads Lua source as the mod name, replacing any mod of that name.
//
// Postcondition: on error the mod's partial registrations are withdrawn and
// its state is closed.
func (m *Manager) LoadString(name, src string) error {
	mod := &Mod{
		Name:   name,
		L:      NewSandboxedState(),
		limit:  m.limit,
		logger: m.logger.With(zap.String("mod", name)),
	}
	m.RegisterModules(mod)

	m.unload(name)

	mod.mu.Lock()
	err := WithBudget(mod.L, m.limit, func() error { return mod.L.DoString(src) })
	mod.mu.Unlock()
	if err != nil {
		m.withdraw(mod)
		mod.close()
		return fmt.Errorf("scripting: loading mod %q: %w", name, err)
	}

	m.mu.Lock()
	m.mods[name] = mod
	m.mu.Unlock()
	m.logger.Info("mod loaded",
		zap.String("mod", name),
		zap.Int("overrides", len(mod.overridden)),
	)
	return nil
}

// Mods returns the names of the loaded mods, sorted.
func (m *Manager) Mods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.mods))
	for name := range m.mods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Close withdraws every mod's overrides and closes their states.
func (m *Manager) Close() {
	for _, name := range m.Mods() {
		m.unload(name)
	}
}

func (m *Manager) unload(name string) {
	m.mu.Lock()
	mod, ok := m.mods[name]
	delete(m.mods, name)
	m.mu.Unlock()
	if !ok {
		return
	}
	m.withdraw(mod)
	mod.close()
}

func (m *Mod) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		m.L.Close()
	}
}

// withdraw removes the overrides mod still owns from the registry.
func (m *Manager) withdraw(mod *Mod) {
	for _, name := range mod.overridden {
		m.formulas.Unregister(name, mod.Name)
	}
}
