package combat

import "github.com/samdwyer/critterquest/internal/entity"

// StageMultiplier returns the stat multiplier for a stage. Negative stages
// use 2/(2+|s|), positive stages (2+s)/2. Out-of-range input is clamped.
func StageMultiplier(stage int) float64 {
	if stage > entity.MaxStage {
		stage = entity.MaxStage
	}
	if stage < -entity.MaxStage {
		stage = -entity.MaxStage
	}
	if stage < 0 {
		return 2 / float64(2-stage)
	}
	return float64(2+stage) / 2
}
