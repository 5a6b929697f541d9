package combat

import (
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/model"
)

// EffectiveStats turns a snapshot into its encounter combatant: base stats
// plus equipped item effects plus the given (already pruned) buffs.
// Current HP is carried over, clamped to the effective max.
func EffectiveStats(snap *model.CharacterSnapshot, buffs []model.ActiveBuff) *model.Combatant {
	c := &model.Combatant{
		ID:        snap.CharacterID,
		Name:      snap.Name,
		Level:     snap.Level,
		MaxHP:     snap.MaxHP,
		Attack:    snap.Attack,
		Defense:   snap.Defense,
		Speed:     snap.Speed,
		Archetype: snap.Archetype,
	}

	for _, itemID := range snap.EquippedItems {
		e, ok := data.GetItemEffect(itemID)
		if !ok {
			continue
		}
		c.Attack += e.Attack
		c.Defense += e.Defense
		c.Speed += e.Speed
		c.MaxHP += e.MaxHP
	}

	for _, b := range buffs {
		switch b.Kind {
		case model.BuffAttack:
			c.Attack += b.Magnitude
		case model.BuffDefense:
			c.Defense += b.Magnitude
		case model.BuffSpeed:
			c.Speed += b.Magnitude
		case model.BuffMaxHP:
			c.MaxHP += b.Magnitude
		}
	}

	c.Attack = max(c.Attack, 0)
	c.Defense = max(c.Defense, 0)
	c.Speed = max(c.Speed, 0)
	c.MaxHP = max(c.MaxHP, 1)
	c.SetCurrentHP(snap.CurrentHP)
	return c
}
