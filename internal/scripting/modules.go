package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// RegisterModules installs the engine global into mod's state:
//
//	engine.formula.override(name, priority, fn) -> bool
//	engine.formula.names() -> { name, ... }
//	engine.log.debug/info/warn/error(msg)
//
// Precondition: mod.L must be from NewSandboxedState.
func (m *Manager) RegisterModules(mod *Mod) {
	L := mod.L
	engine := L.NewTable()

	ft := L.NewTable()
	L.SetField(ft, "override", L.NewFunction(m.luaOverride(mod)))
	L.SetField(ft, "names", L.NewFunction(luaNames))
	L.SetField(engine, "formula", ft)

	lt := L.NewTable()
	for level, log := range map[string]func(string, ...zap.Field){
		"debug": mod.logger.Debug,
		"info":  mod.logger.Info,
		"warn":  mod.logger.Warn,
		"error": mod.logger.Error,
	} {
		L.SetField(lt, level, L.NewFunction(func(L *lua.LState) int {
			log(L.CheckString(1))
			return 0
		}))
	}
	L.SetField(engine, "log", lt)

	L.SetGlobal("engine", engine)
}

func (m *Manager) luaOverride(mod *Mod) lua.LGFunction {
	return func(L *lua.LState) int {
		name := formula.Name(L.CheckString(1))
		priority := L.CheckInt(2)
		fn := L.CheckFunction(3)

		if formula.Known(name) && !LuaSupported(name) {
			mod.logger.Warn("override rejected: formula is not available to Lua mods",
				zap.String("formula", string(name)),
			)
			L.Push(lua.LFalse)
			return 1
		}
		ok := m.formulas.Register(name, mod.Name, priority, &LuaFormula{mod: mod, fn: fn})
		if ok {
			mod.overridden = append(mod.overridden, name)
		}
		L.Push(lua.LBool(ok))
		return 1
	}
}

func luaNames(L *lua.LState) int {
	t := L.NewTable()
	for _, n := range LuaNames() {
		t.Append(lua.LString(n))
	}
	L.Push(t)
	return 1
}

// combatantTable is a read-only snapshot of c for Lua. Changes made by the
// script are not written back.
func combatantTable(L *lua.LState, c *entity.Combatant) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(c.ID))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "kind", lua.LString(c.Kind))
	L.SetField(t, "is_player", lua.LBool(c.IsPlayer()))
	L.SetField(t, "level", lua.LNumber(c.Level))
	L.SetField(t, "health", lua.LNumber(c.CurrentHealth))
	L.SetField(t, "max_health", lua.LNumber(c.MaxHealth))
	L.SetField(t, "encumbrance", lua.LNumber(c.Encumbrance))
	L.SetField(t, "armor_modifier", lua.LNumber(c.ArmorModifier))
	L.SetField(t, "chance_to_hit_modifier", lua.LNumber(c.ChanceToHitModifier))
	L.SetField(t, "race", lua.LString(c.Race))
	L.SetField(t, "affinity", lua.LString(c.Affinity))
	L.SetField(t, "archetype", lua.LString(c.Archetype))
	L.SetField(t, "undead_class", lua.LString(c.UndeadClass))

	stats := L.NewTable()
	L.SetField(stats, "strength", lua.LNumber(c.Stats.Strength))
	L.SetField(stats, "intelligence", lua.LNumber(c.Stats.Intelligence))
	L.SetField(stats, "willpower", lua.LNumber(c.Stats.Willpower))
	L.SetField(stats, "agility", lua.LNumber(c.Stats.Agility))
	L.SetField(stats, "endurance", lua.LNumber(c.Stats.Endurance))
	L.SetField(stats, "personality", lua.LNumber(c.Stats.Personality))
	L.SetField(stats, "speed", lua.LNumber(c.Stats.Speed))
	L.SetField(stats, "luck", lua.LNumber(c.Stats.Luck))
	L.SetField(t, "stats", stats)

	skills := L.NewTable()
	for s, v := range c.Skills {
		L.SetField(skills, string(s), lua.LNumber(v))
	}
	L.SetField(t, "skills", skills)

	if c.Career != nil {
		career := L.NewTable()
		L.SetField(career, "id", lua.LString(c.Career.ID))
		L.SetField(career, "adrenaline_rush", lua.LBool(c.Career.AdrenalineRush))
		L.SetField(t, "career", career)
	}
	if w := c.Weapon; w != nil {
		wt := L.NewTable()
		L.SetField(wt, "name", lua.LString(w.Name))
		L.SetField(wt, "skill", lua.LString(w.Skill))
		L.SetField(wt, "material", lua.LString(w.Material))
		L.SetField(wt, "min_damage", lua.LNumber(w.MinDamage))
		L.SetField(wt, "max_damage", lua.LNumber(w.MaxDamage))
		L.SetField(t, "weapon", wt)
	}

	effects := L.NewTable()
	for _, ae := range c.Effects.All() {
		effects.Append(lua.LString(ae.Def.ID))
	}
	L.SetField(t, "effects", effects)
	return t
}
