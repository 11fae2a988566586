package game

import (
	"madn/dice"
	"madn/meta"
)

type StandardRules struct {
	Permission int
	ReleaseOn  int
	BonusOn    int
	MaxBonus   int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		Permission: meta.PERMISSION_ROLLS,
		ReleaseOn:  meta.RELEASE_FACE,
		BonusOn:    dice.Faces,
		MaxBonus:   meta.MAX_BONUS_ROLLS,
	}
}

func (sr *StandardRules) PermissionRolls() int {
	return sr.Permission
}

func (sr *StandardRules) Releases(roll int) bool {
	return roll == sr.ReleaseOn
}

func (sr *StandardRules) GrantsExtraRoll(roll int) bool {
	return roll == sr.BonusOn
}

func (sr *StandardRules) MaxBonusRolls() int {
	return sr.MaxBonus
}
