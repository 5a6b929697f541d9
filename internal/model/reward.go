package model

import "math/big"

// Milestone is a streak bonus. Periodic milestones set Every and Multiplier,
// absolute tiers set AtLeast and Bonus.
type Milestone struct {
	Name       string `json:"name"`
	Every      int64  `json:"every,omitempty"`
	Multiplier int64  `json:"multiplier,omitempty"`
	AtLeast    int64  `json:"at_least,omitempty"`
	Bonus      int64  `json:"bonus,omitempty"`
}

// RewardResult is what a win pays out.
type RewardResult struct {
	Exp        *big.Int
	Coins      *big.Int
	NewStreak  int64
	Milestones []Milestone
}
