package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmamonov/hilo/internal/world"
)

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func newEngine(t *testing.T, files map[string]string) (*Engine, *observer.ObservedLogs) {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		writeScript(t, dir, name, src)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := NewEngine(dir, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e, logs
}

func TestEngine_DamageHooks(t *testing.T) {
	e, _ := newEngine(t, map[string]string{
		"rules/damage.lua": `
function ammo_damage(kind, base)
  if kind == "Dynamite" then return base * 2 end
  return base
end
function contact_damage(kind, base) return 7 end
`,
	})
	assert.True(t, e.Has("ammo_damage"))
	assert.Equal(t, 200, e.AmmoDamage(world.KindDynamite, 100))
	assert.Equal(t, 10, e.AmmoDamage(world.KindBullet, 10))
	assert.Equal(t, 7, e.ContactDamage(world.KindEnemy, 25))
}

func TestEngine_MissingHooksKeepBase(t *testing.T) {
	e, logs := newEngine(t, nil)
	assert.False(t, e.Has("ammo_damage"))
	assert.Equal(t, 50, e.AmmoDamage(world.KindRocket, 50))
	assert.Equal(t, 25, e.ContactDamage(world.KindEnemy, 25))
	orders, ok := e.Think(world.EnemyView{})
	assert.False(t, ok)
	assert.Nil(t, orders)
	assert.Zero(t, logs.FilterMessage("lua hook error").Len())
}

func TestEngine_BadHooksFallBackAndLog(t *testing.T) {
	e, logs := newEngine(t, map[string]string{
		"bad.lua": `
function ammo_damage(kind, base) error("boom") end
function contact_damage(kind, base) return "lots" end
function enemy_think(ctx) return 3 end
`,
	})
	assert.Equal(t, 30, e.AmmoDamage(world.KindGrenade, 30))
	assert.Equal(t, 25, e.ContactDamage(world.KindEnemy, 25))
	_, ok := e.Think(world.EnemyView{})
	assert.False(t, ok)

	assert.Equal(t, 1, logs.FilterMessage("lua hook error").Len())
	assert.Equal(t, 1, logs.FilterMessage("lua hook returned non-number").Len())
	assert.Equal(t, 1, logs.FilterMessage("lua enemy_think returned non-table").Len())
}

func TestEngine_EnemyThink(t *testing.T) {
	e, logs := newEngine(t, map[string]string{
		"ai/enemy.lua": `
function enemy_think(ctx)
  if ctx.name ~= "guard" then return nil end
  if ctx.direction == "Left" and not ctx.moved then
    return {"rotate", "dance", "step"}
  end
  return {}
end
`,
	})

	orders, ok := e.Think(world.EnemyView{Name: "guard", Direction: world.Left})
	require.True(t, ok)
	assert.Equal(t, []world.Order{world.OrderRotate, world.OrderStep}, orders)
	assert.Equal(t, 1, logs.FilterMessage("unknown enemy order").Len())

	_, ok = e.Think(world.EnemyView{Name: "guard", Direction: world.Right})
	assert.False(t, ok)
	_, ok = e.Think(world.EnemyView{Name: "other"})
	assert.False(t, ok)
}

func TestEngine_BrainDrivesEnemy(t *testing.T) {
	e, _ := newEngine(t, map[string]string{
		"ai.lua": `function enemy_think(ctx) return {"rotate"} end`,
	})
	w := world.New(world.Options{Seed: 1})
	w.Init(3, []string{" E "})
	enemy := w.ListOfKind(world.KindEnemy)[0].(*world.Actor)
	before := enemy.Direction()

	world.NewAI(w, e).Think()
	assert.Equal(t, before.Inverse(), enemy.Direction())
}

func TestEngine_SyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", "function (")
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestEngine_BundledRules(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 100, e.AmmoDamage(world.KindDynamite, 100))
	assert.Equal(t, 12, e.ContactDamage(world.KindSmallEnemy, 25))
	_, ok := e.Think(world.EnemyView{})
	assert.False(t, ok)
}
