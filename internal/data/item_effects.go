package data

// ItemEffect describes how an equipped item changes combat stats.
type ItemEffect struct {
	ItemID  int32
	Name    string
	Attack  int64
	Defense int64
	Speed   int64
	MaxHP   int64
}

// itemEffects: read-only таблица предметов, влияющих на бой.
// Предметы без записи здесь на статы не влияют (ресурсы, квестовые).
var itemEffects = map[int32]ItemEffect{
	2001: {ItemID: 2001, Name: "Bronze Sword", Attack: 8},
	2002: {ItemID: 2002, Name: "Steel Sword", Attack: 20},
	2003: {ItemID: 2003, Name: "Mithril Blade", Attack: 45, Speed: 2},
	2004: {ItemID: 2004, Name: "Dragon Fang", Attack: 90, Speed: 4},
	3001: {ItemID: 3001, Name: "Leather Vest", Defense: 6, MaxHP: 20},
	3002: {ItemID: 3002, Name: "Chain Mail", Defense: 18, MaxHP: 50, Speed: -1},
	3003: {ItemID: 3003, Name: "Plate Armor", Defense: 40, MaxHP: 120, Speed: -3},
	4001: {ItemID: 4001, Name: "Swift Boots", Speed: 5},
	4002: {ItemID: 4002, Name: "Ring of Vigor", MaxHP: 80},
	6001: {ItemID: 6001, Name: "Bandit Dagger", Attack: 12, Speed: 3},
	6002: {ItemID: 6002, Name: "Ogre Club", Attack: 35, Speed: -2},
	6003: {ItemID: 6003, Name: "Ember Shield", Defense: 30, MaxHP: 60},
	6004: {ItemID: 6004, Name: "Dragonscale Mail", Defense: 75, MaxHP: 300},
}

// GetItemEffect returns the effect of itemID, or false if the item has none.
func GetItemEffect(itemID int32) (ItemEffect, bool) {
	e, ok := itemEffects[itemID]
	return e, ok
}
