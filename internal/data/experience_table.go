package data

import "math/big"

// MaxPlayerLevel is the maximum achievable player level.
const MaxPlayerLevel = 80

// experienceTable holds cumulative XP required to reach each level.
// Index = level (0-81). Level 0 and 1 require 0 XP.
var experienceTable = [82]int64{
	0, 0, 68, 363, 1168, 2884, 6038, 11287, 19423, 31378,
	48229, 71201, 101676, 141192, 191452, 254327, 331864, 426284, 539995, 675590,
	835854, 1023775, 1242536, 1495531, 1786365, 2118860, 2497059, 2925229, 3407873, 3949727,
	4555766, 5231213, 5981539, 6812472, 7729999, 8740372, 9850111, 11066012, 12395149, 13844879,
	15422851, 17137002, 18995573, 21007109, 23180476, 25524859, 28049776, 30765073, 33680933, 36807883,
	40156799, 43738914, 47565824, 51649497, 56002282, 60636913, 65566520, 70804633, 76365186, 82262524,
	88511413, 95127046, 102124950, 109521094, 117331800, 125573854, 134264511, 143421503, 153063052, 163207876,
	173875199, 185084664, 196856353, 209210793, 222168975, 235752477, 249983468, 264884712, 280479584, 296792080,
	313846832, 331670128,
}

// GetExpForLevel returns cumulative XP required to reach the given level.
// Returns 0 for level <= 1. Returns max XP for level > MaxPlayerLevel.
func GetExpForLevel(level int32) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxPlayerLevel+1 {
		level = MaxPlayerLevel + 1
	}
	return experienceTable[level]
}

// GetLevelForExp returns the level corresponding to the given cumulative XP.
// Scans upward from startLevel; levels never go down.
func GetLevelForExp(exp *big.Int, startLevel int32) int32 {
	if startLevel < 1 {
		startLevel = 1
	}
	level := startLevel
	for level < MaxPlayerLevel {
		if big.NewInt(experienceTable[level+1]).Cmp(exp) > 0 {
			break
		}
		level++
	}
	return level
}
