package model

// Drop is one item awarded from a defeated monster.
type Drop struct {
	ItemID int32 `json:"item_id"`
	Count  int32 `json:"count"`
}

// Monster is a generated opponent, already scaled for the player's streak.
type Monster struct {
	TemplateID int32  `json:"template_id"`
	Name       string `json:"name"`
	Rank       string `json:"rank,omitempty"`
	Level      int32  `json:"level"`
	HP         int64  `json:"hp"`
	Attack     int64  `json:"attack"`
	Defense    int64  `json:"defense"`
	Speed      int64  `json:"speed"`
	Exp        int64  `json:"exp"`
	Coins      int64  `json:"coins"`
}

// Combatant converts the monster into its encounter form at full health.
func (m *Monster) Combatant() *Combatant {
	return &Combatant{
		ID:        int64(m.TemplateID),
		Name:      m.Name,
		Level:     m.Level,
		CurrentHP: m.HP,
		MaxHP:     m.HP,
		Attack:    m.Attack,
		Defense:   m.Defense,
		Speed:     m.Speed,
		Monster:   true,
	}
}
