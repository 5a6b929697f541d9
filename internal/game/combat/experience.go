package combat

import (
	"math/big"

	"github.com/udisondev/streakarena/internal/data"
)

// LevelUp is the character progression after exp is added.
type LevelUp struct {
	Experience *big.Int
	OldLevel   int32
	NewLevel   int32
}

// Leveled reports whether the character gained at least one level.
func (l LevelUp) Leveled() bool {
	return l.NewLevel > l.OldLevel
}

// AddExperience adds gained to exp and resolves the new level.
// Neither argument is modified.
func AddExperience(level int32, exp, gained *big.Int) LevelUp {
	total := new(big.Int)
	if exp != nil {
		total.Set(exp)
	}
	if gained != nil && gained.Sign() > 0 {
		total.Add(total, gained)
	}
	return LevelUp{
		Experience: total,
		OldLevel:   level,
		NewLevel:   data.GetLevelForExp(total, level),
	}
}
