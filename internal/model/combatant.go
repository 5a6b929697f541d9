package model

// Combatant описывает участника одного боя (игрок или монстр), сведённого к боевым статам.
// Живёт только в пределах одного encounter; наружу сохраняется лишь итоговое HP.
type Combatant struct {
	ID        int64
	Name      string
	Level     int32
	CurrentHP int64
	MaxHP     int64
	Attack    int64
	Defense   int64
	Speed     int64 // 0 = speed not set
	Archetype Archetype
	Monster   bool
}

// IsDead reports whether the combatant has no health left.
func (c *Combatant) IsDead() bool {
	return c.CurrentHP <= 0
}

// SetCurrentHP sets health clamped to [0, MaxHP].
func (c *Combatant) SetCurrentHP(hp int64) {
	c.CurrentHP = ClampHP(hp, c.MaxHP)
}

// ReduceCurrentHP subtracts damage and returns the health actually removed.
func (c *Combatant) ReduceCurrentHP(damage int64) int64 {
	if damage <= 0 {
		return 0
	}
	before := c.CurrentHP
	c.SetCurrentHP(before - damage)
	return before - c.CurrentHP
}

// ClampHP clamps hp to [0, maxHP].
func ClampHP(hp, maxHP int64) int64 {
	if maxHP < 0 {
		maxHP = 0
	}
	if hp < 0 {
		return 0
	}
	if hp > maxHP {
		return maxHP
	}
	return hp
}
