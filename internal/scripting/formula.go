package scripting

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
)

// luaArity lists the formulas a Lua mod may override and the number of
// parameters each receives. Formulas exchanging items, body parts or
// side effects stay Go-only.
var luaArity = map[formula.Name]int{
	formula.DamageModifier:       1,
	formula.HandToHandMinDamage:  1,
	formula.HandToHandMaxDamage:  1,
	formula.LockpickingChance:    2,
	formula.PlayerLevel:          2,
	formula.EnemyTypeModifier:    2,
	formula.AdrenalineRushToHit:  2,
	formula.StatsToHit:           2,
	formula.SkillsToHit:          2,
	formula.AdjustmentsToHit:     2,
	formula.BackstabChance:       2,
	formula.CriticalStrikeChance: 1,
	formula.SavingThrow:          4,
}

// LuaSupported reports whether name can be overridden from Lua.
func LuaSupported(name formula.Name) bool {
	_, ok := luaArity[name]
	return ok
}

// LuaNames returns the Lua-overridable formula names, sorted.
func LuaNames() []formula.Name {
	out := make([]formula.Name, 0, len(luaArity))
	for n := range luaArity {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LuaFormula is a Lua function registered as a formula override. It is
// adapted to the Go call shape when the formula is resolved.
//
// A call that errors, exceeds the instruction budget, or returns a non-number
// logs a warning and yields the built-in result instead, or 0 when the call
// site has no built-in.
type LuaFormula struct {
	mod *Mod
	fn  *lua.LFunction
}

// Adapt implements formula.Adapter.
//
// Postcondition: returns an error when name is not Lua-overridable or the Lua
// function declares a different number of parameters, which evicts the binding.
func (f *LuaFormula) Adapt(name formula.Name, builtin any) (any, error) {
	want, ok := luaArity[name]
	if !ok {
		return nil, fmt.Errorf("formula %s cannot be overridden from Lua", name)
	}
	if p := f.fn.Proto; p != nil && p.IsVarArg == 0 && int(p.NumParameters) != want {
		return nil, fmt.Errorf("lua function takes %d parameters, %s passes %d", p.NumParameters, name, want)
	}

	num := func(v int) lua.LValue { return lua.LNumber(v) }

	switch name {
	case formula.DamageModifier, formula.HandToHandMinDamage, formula.HandToHandMaxDamage:
		fb, _ := builtin.(func(int) int)
		return func(v int) int {
			return f.eval(name, func() int {
				if fb == nil {
					return 0
				}
				return fb(v)
			}, func(*lua.LState) []lua.LValue { return []lua.LValue{num(v)} })
		}, nil

	case formula.CriticalStrikeChance:
		fb, _ := builtin.(formula.CriticalChanceFunc)
		return formula.CriticalChanceFunc(func(attacker *entity.Combatant) int {
			return f.eval(name, func() int {
				if fb == nil {
					return 0
				}
				return fb(attacker)
			}, func(L *lua.LState) []lua.LValue {
				return []lua.LValue{combatantTable(L, attacker)}
			})
		}), nil

	case formula.LockpickingChance, formula.PlayerLevel:
		fb, _ := builtin.(func(int, int) int)
		return func(a, b int) int {
			return f.eval(name, func() int {
				if fb == nil {
					return 0
				}
				return fb(a, b)
			}, func(*lua.LState) []lua.LValue { return []lua.LValue{num(a), num(b)} })
		}, nil

	case formula.EnemyTypeModifier, formula.AdrenalineRushToHit, formula.StatsToHit,
		formula.SkillsToHit, formula.AdjustmentsToHit:
		fb, _ := builtin.(formula.MatchupFunc)
		return formula.MatchupFunc(func(attacker, target *entity.Combatant) int {
			return f.eval(name, func() int {
				if fb == nil {
					return 0
				}
				return fb(attacker, target)
			}, func(L *lua.LState) []lua.LValue {
				return []lua.LValue{combatantTable(L, attacker), combatantTable(L, target)}
			})
		}), nil

	case formula.BackstabChance:
		fb, _ := builtin.(formula.BackstabChanceFunc)
		return formula.BackstabChanceFunc(func(attacker *entity.Combatant, facingAway bool) int {
			return f.eval(name, func() int {
				if fb == nil {
					return 0
				}
				return fb(attacker, facingAway)
			}, func(L *lua.LState) []lua.LValue {
				return []lua.LValue{combatantTable(L, attacker), lua.LBool(facingAway)}
			})
		}), nil

	case formula.SavingThrow:
		fb, _ := builtin.(formula.SavingThrowFunc)
		return formula.SavingThrowFunc(func(element entity.Element, flags entity.EffectFlags, target *entity.Combatant, modifier int) int {
			return f.eval(name, func() int {
				if fb == nil {
					return 0
				}
				return fb(element, flags, target, modifier)
			}, func(L *lua.LState) []lua.LValue {
				return []lua.LValue{
					lua.LString(element.String()),
					num(int(flags)),
					combatantTable(L, target),
					num(modifier),
				}
			})
		}), nil
	}
	return nil, fmt.Errorf("formula %s has no Lua adapter", name)
}

// eval calls the Lua function and truncates its numeric result toward zero.
func (f *LuaFormula) eval(name formula.Name, fallback func() int, args func(L *lua.LState) []lua.LValue) int {
	ret, err := f.mod.call(f.fn, args)
	if err != nil {
		f.mod.logger.Warn("lua formula failed; using built-in",
			zap.String("formula", string(name)),
			zap.Error(err),
		)
		return fallback()
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		f.mod.logger.Warn("lua formula returned a non-number; using built-in",
			zap.String("formula", string(name)),
			zap.String("got", ret.Type().String()),
		)
		return fallback()
	}
	return int(n)
}
