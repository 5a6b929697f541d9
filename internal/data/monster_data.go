package data

// monsterDefs содержит статический каталог монстров арены.
// Уровни покрывают 1..120, чтобы у каждого уровня игрока были соседние корзины.
var monsterDefs = []MonsterDef{
	{ID: 1001, Name: "Giant Rat", Level: 1, HP: 40, Attack: 6, Defense: 3, Speed: 9, Exp: 12, Coins: 5,
		Drops: []DropDef{{ItemID: 5001, Chance: 30, Min: 1, Max: 2}}},
	{ID: 1002, Name: "Goblin Scout", Level: 3, HP: 60, Attack: 9, Defense: 5, Speed: 11, Exp: 20, Coins: 9,
		Drops: []DropDef{{ItemID: 5001, Chance: 25, Min: 1, Max: 3}}},
	{ID: 1003, Name: "Cave Bat", Level: 5, HP: 70, Attack: 12, Defense: 6, Speed: 16, Exp: 28, Coins: 12},
	{ID: 1004, Name: "Wolf", Level: 7, HP: 90, Attack: 16, Defense: 9, Speed: 14, Exp: 40, Coins: 18,
		Drops: []DropDef{{ItemID: 5002, Chance: 20, Min: 1, Max: 1}}},
	{ID: 1005, Name: "Bandit", Level: 9, HP: 100, Attack: 19, Defense: 13, Speed: 10, Exp: 55, Coins: 35,
		Drops: []DropDef{{ItemID: 5001, Chance: 40, Min: 1, Max: 2}, {ItemID: 6001, Chance: 5, Min: 1, Max: 1}}},
	{ID: 1006, Name: "Orc Grunt", Level: 10, HP: 100, Attack: 20, Defense: 15, Speed: 8, Exp: 100, Coins: 50,
		Drops: []DropDef{{ItemID: 5002, Chance: 25, Min: 1, Max: 1}}},
	{ID: 1007, Name: "Skeleton", Level: 12, HP: 130, Attack: 24, Defense: 18, Speed: 9, Exp: 120, Coins: 55},
	{ID: 1008, Name: "Forest Troll", Level: 15, HP: 220, Attack: 30, Defense: 22, Speed: 7, Exp: 170, Coins: 70,
		Drops: []DropDef{{ItemID: 5003, Chance: 15, Min: 1, Max: 1}}},
	{ID: 1009, Name: "Harpy", Level: 17, HP: 180, Attack: 35, Defense: 20, Speed: 18, Exp: 190, Coins: 80},
	{ID: 1010, Name: "Ghoul", Level: 20, HP: 260, Attack: 40, Defense: 28, Speed: 10, Exp: 240, Coins: 95,
		Drops: []DropDef{{ItemID: 5002, Chance: 30, Min: 1, Max: 2}}},
	{ID: 1011, Name: "Lizardman", Level: 23, HP: 300, Attack: 46, Defense: 33, Speed: 12, Exp: 290, Coins: 110},
	{ID: 1012, Name: "Ogre", Level: 26, HP: 420, Attack: 55, Defense: 35, Speed: 6, Exp: 350, Coins: 130,
		Drops: []DropDef{{ItemID: 5003, Chance: 20, Min: 1, Max: 1}, {ItemID: 6002, Chance: 4, Min: 1, Max: 1}}},
	{ID: 1013, Name: "Dark Elf Ranger", Level: 30, HP: 380, Attack: 64, Defense: 40, Speed: 20, Exp: 430, Coins: 160},
	{ID: 1014, Name: "Stone Golem", Level: 34, HP: 600, Attack: 62, Defense: 70, Speed: 4, Exp: 520, Coins: 190,
		Drops: []DropDef{{ItemID: 5004, Chance: 15, Min: 1, Max: 3}}},
	{ID: 1015, Name: "Wyvern", Level: 38, HP: 650, Attack: 82, Defense: 55, Speed: 22, Exp: 640, Coins: 230},
	{ID: 1016, Name: "Vampire", Level: 42, HP: 700, Attack: 95, Defense: 60, Speed: 19, Exp: 760, Coins: 270,
		Drops: []DropDef{{ItemID: 5003, Chance: 30, Min: 1, Max: 2}}},
	{ID: 1017, Name: "Minotaur", Level: 46, HP: 900, Attack: 110, Defense: 72, Speed: 11, Exp: 900, Coins: 320},
	{ID: 1018, Name: "Fire Elemental", Level: 50, HP: 950, Attack: 125, Defense: 80, Speed: 17, Exp: 1050, Coins: 380,
		Drops: []DropDef{{ItemID: 5004, Chance: 25, Min: 1, Max: 2}, {ItemID: 6003, Chance: 3, Min: 1, Max: 1}}},
	{ID: 1019, Name: "Death Knight", Level: 55, HP: 1200, Attack: 140, Defense: 100, Speed: 13, Exp: 1300, Coins: 450},
	{ID: 1020, Name: "Basilisk", Level: 60, HP: 1400, Attack: 160, Defense: 110, Speed: 12, Exp: 1550, Coins: 520},
	{ID: 1021, Name: "Lich", Level: 65, HP: 1500, Attack: 185, Defense: 115, Speed: 15, Exp: 1850, Coins: 600,
		Drops: []DropDef{{ItemID: 5004, Chance: 35, Min: 1, Max: 3}}},
	{ID: 1022, Name: "Frost Giant", Level: 70, HP: 2100, Attack: 205, Defense: 140, Speed: 9, Exp: 2200, Coins: 700},
	{ID: 1023, Name: "Chimera", Level: 75, HP: 2300, Attack: 230, Defense: 150, Speed: 18, Exp: 2600, Coins: 820},
	{ID: 1024, Name: "Behemoth", Level: 80, HP: 3000, Attack: 250, Defense: 190, Speed: 8, Exp: 3100, Coins: 950,
		Drops: []DropDef{{ItemID: 6003, Chance: 8, Min: 1, Max: 1}}},
	{ID: 1025, Name: "Abyss Walker", Level: 88, HP: 3400, Attack: 290, Defense: 200, Speed: 21, Exp: 3800, Coins: 1150},
	{ID: 1026, Name: "Ancient Dragon", Level: 95, HP: 4500, Attack: 330, Defense: 240, Speed: 16, Exp: 4700, Coins: 1400,
		Drops: []DropDef{{ItemID: 6004, Chance: 5, Min: 1, Max: 1}}},
	{ID: 1027, Name: "Titan", Level: 105, HP: 5600, Attack: 380, Defense: 280, Speed: 10, Exp: 5900, Coins: 1750},
	{ID: 1028, Name: "Void Emperor", Level: 120, HP: 7500, Attack: 450, Defense: 330, Speed: 20, Exp: 8000, Coins: 2400,
		Drops: []DropDef{{ItemID: 6004, Chance: 10, Min: 1, Max: 1}}},
}
