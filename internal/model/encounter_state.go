package model

import "fmt"

// SecondWindHits is how many boosted hits a second wind lasts.
const SecondWindHits = 3

// EncounterState is per-character combat state that survives between encounters.
type EncounterState struct {
	ComboCount          int32 `json:"combo_count"`
	SecondWindActive    bool  `json:"second_wind_active"`
	SecondWindTurnsLeft int32 `json:"second_wind_turns_left"`
}

// Validate reports corrupt combinations that cannot arise from normal play.
func (s EncounterState) Validate() error {
	if s.ComboCount < 0 {
		return fmt.Errorf("negative combo count %d", s.ComboCount)
	}
	if s.SecondWindTurnsLeft < 0 || s.SecondWindTurnsLeft > SecondWindHits {
		return fmt.Errorf("second wind turns %d out of range", s.SecondWindTurnsLeft)
	}
	if s.SecondWindActive && s.SecondWindTurnsLeft == 0 {
		return fmt.Errorf("second wind active with no turns left")
	}
	if !s.SecondWindActive && s.SecondWindTurnsLeft != 0 {
		return fmt.Errorf("second wind inactive with %d turns left", s.SecondWindTurnsLeft)
	}
	return nil
}
