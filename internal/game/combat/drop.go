package combat

import (
	"github.com/udisondev/streakarena/internal/config"
	"github.com/udisondev/streakarena/internal/data"
	"github.com/udisondev/streakarena/internal/model"
	"github.com/udisondev/streakarena/internal/rng"
)

// CalculateDrops rolls the catalog drop list of a defeated monster.
//
// For each entry:
//  1. Roll item chance (Chance% × DropChanceMultiplier), >= 100 always drops
//  2. Count = random(min..max) × DropAmountMultiplier, at least 1
func CalculateDrops(src rng.Source, def *data.MonsterDef, rates *config.Battle) []model.Drop {
	if def == nil || len(def.Drops) == 0 {
		return nil
	}

	chanceMultiplier := 1.0
	amountMultiplier := 1.0
	if rates != nil {
		chanceMultiplier = rates.DropChanceMultiplier
		amountMultiplier = rates.DropAmountMultiplier
	}

	var results []model.Drop
	for _, item := range def.Drops {
		chance := item.Chance * chanceMultiplier
		if chance <= 0 {
			continue
		}
		if chance < 100 && src.Float64()*100.0 >= chance {
			continue
		}

		minCount := max(item.Min, 1)
		maxCount := max(item.Max, minCount)

		count := minCount
		if maxCount > minCount {
			count = int32(src.IntN(int(maxCount-minCount+1))) + minCount
		}

		count = int32(float64(count) * amountMultiplier)
		if count <= 0 {
			count = 1
		}

		results = append(results, model.Drop{ItemID: item.ItemID, Count: count})
	}
	return results
}
