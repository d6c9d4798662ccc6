package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/game/entity"
	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/game/inventory"
)

// damageEquipment is the built-in damage_equipment formula. The weapon wears
// by the damage it inflicted; the shield and the armour on the struck part
// wear by what they absorbed, scaled by how far the attack material outranks
// theirs. Clothing takes the wear when no armour covers the part.
func (r *resolution) damageEquipment(attacker, target *entity.Combatant, wear formula.Wear) {
	if attacker == nil || target == nil {
		return
	}
	attackTier := wear.AttackMaterial.Tier()

	if w := wear.Weapon; w != nil && wear.Inflicted > 0 {
		loss := max(1, wear.Inflicted/w.Skill.Resilience())
		r.lowerCondition(attacker, w, loss)
	}

	if s := target.Shield; s != nil && wear.ShieldAbsorbed > 0 {
		loss := wear.ShieldAbsorbed * max(1, attackTier-s.Material.Tier())
		r.lowerCondition(target, s, loss)
	}

	if a := target.ArmorAt(wear.BodyPart); a != nil {
		if wear.ArmorAbsorbed > 0 {
			loss := wear.ArmorAbsorbed * max(1, attackTier-a.Material.Tier())
			if a.ArmorClass() == inventory.ArmorLight {
				loss = max(1, loss/2)
			}
			r.lowerCondition(target, a, loss)
		}
		return
	}

	if c := target.ClothingAt(wear.BodyPart); c != nil {
		landed := wear.ArmorAbsorbed + wear.Inflicted
		if landed > 0 {
			loss := max(1, landed*max(1, attackTier-c.Material.Tier())/2)
			r.lowerCondition(target, c, loss)
		}
	}
}

// lowerCondition wears item down. An enchanted item of the player that breaks
// is unequipped unless NoBreakEnchanted is set; mundane items stay equipped.
func (r *resolution) lowerCondition(owner *entity.Combatant, item *inventory.Item, amount int) {
	if !item.LowerCondition(amount) {
		return
	}
	r.broken = append(r.broken, item)
	r.logger.Debug("item condition reached zero",
		zap.String("owner", owner.ID),
		zap.String("item", item.Name),
	)
	if owner.IsPlayer() && item.Enchanted && !r.opts.NoBreakEnchanted {
		owner.Unequip(item)
		r.notify(fmt.Sprintf("%s has broken.", item.Name))
	}
}
