package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dmamonov/hilo/internal/world"
)

// Hook names looked up in the loaded scripts. Every hook is optional.
const (
	hookAmmoDamage    = "ammo_damage"
	hookContactDamage = "contact_damage"
	hookEnemyThink    = "enemy_think"
)

var (
	_ world.Rules = (*Engine)(nil)
	_ world.Brain = (*Engine)(nil)
)

// Engine wraps a single gopher-lua VM for game rules.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir,
// then the rules/ and ai/ subdirectories. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, dir := range []string{scriptsDir, filepath.Join(scriptsDir, "rules"), filepath.Join(scriptsDir, "ai")} {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() { e.vm.Close() }

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global function of that name is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// call runs a hook with one return value. ok is false when the hook is not
// defined or failed; failures are logged.
func (e *Engine) call(name string, args ...lua.LValue) (lua.LValue, bool) {
	fn, isFn := e.vm.GetGlobal(name).(*lua.LFunction)
	if !isFn {
		return lua.LNil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua hook error", zap.String("hook", name), zap.Error(err))
		return lua.LNil, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return ret, true
}

func (e *Engine) damage(hook string, kind world.Kind, base int) int {
	ret, ok := e.call(hook, lua.LString(kind.String()), lua.LNumber(base))
	if !ok {
		return base
	}
	n, isNum := ret.(lua.LNumber)
	if !isNum {
		e.log.Error("lua hook returned non-number", zap.String("hook", hook), zap.String("type", ret.Type().String()))
		return base
	}
	return int(n)
}

// AmmoDamage calls ammo_damage(kind, base); base when undefined.
func (e *Engine) AmmoDamage(kind world.Kind, base int) int {
	return e.damage(hookAmmoDamage, kind, base)
}

// ContactDamage calls contact_damage(kind, base); base when undefined.
func (e *Engine) ContactDamage(kind world.Kind, base int) int {
	return e.damage(hookContactDamage, kind, base)
}

// Think calls enemy_think(ctx). The hook returns a list of order names, or
// nil to leave the enemy to the built-in patrol.
func (e *Engine) Think(v world.EnemyView) ([]world.Order, bool) {
	ctx := e.vm.NewTable()
	ctx.RawSetString("id", lua.LNumber(v.ID))
	ctx.RawSetString("name", lua.LString(v.Name))
	ctx.RawSetString("x", lua.LNumber(v.X))
	ctx.RawSetString("y", lua.LNumber(v.Y))
	ctx.RawSetString("direction", lua.LString(v.Direction.String()))
	ctx.RawSetString("moved", lua.LBool(v.Moved))
	ctx.RawSetString("health", lua.LNumber(v.Health))
	ctx.RawSetString("clock", lua.LNumber(v.Clock))

	ret, ok := e.call(hookEnemyThink, ctx)
	if !ok || ret == lua.LNil {
		return nil, false
	}
	list, isTable := ret.(*lua.LTable)
	if !isTable {
		e.log.Error("lua enemy_think returned non-table", zap.String("type", ret.Type().String()))
		return nil, false
	}

	var orders []world.Order
	list.ForEach(func(_, val lua.LValue) {
		o, known := world.ParseOrder(lua.LVAsString(val))
		if !known {
			e.log.Warn("unknown enemy order", zap.String("order", val.String()))
			return
		}
		orders = append(orders, o)
	})
	return orders, len(orders) > 0
}
