package combat

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samdwyer/critterquest/internal/entity"
	"github.com/samdwyer/critterquest/internal/gamedata"
)

// Casers carry state, so each call gets its own.
func title(s string) string { return cases.Title(language.English).String(s) }

// StatLabel returns the display name for a stat, e.g. "Special Attack".
func StatLabel(name gamedata.StatName) string {
	var b strings.Builder
	for i, r := range string(name) {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return title(b.String())
}

// AbilityLabel returns the display name for an ability ID, e.g. "Flash Fire".
func AbilityLabel(id gamedata.AbilityID) string {
	return title(strings.ReplaceAll(string(id), "-", " "))
}

// StatusLabel returns the display name for a status condition.
func StatusLabel(s gamedata.StatusCondition) string {
	return title(string(s))
}

// Sentence upper-cases the first letter of s and leaves the rest alone.
func Sentence(s string) string {
	_, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return cases.Upper(language.English).String(s[:n]) + s[n:]
}

func attackCategory(side entity.Side) Category {
	if side == entity.SidePlayer {
		return CategoryPlayerAttack
	}
	return CategoryEnemyAttack
}

func damageCategory(target entity.Side) Category {
	if target == entity.SidePlayer {
		return CategoryPlayerDamage
	}
	return CategoryEnemyDamage
}

// DisplayName prefixes enemies so both sides read clearly in the log.
func DisplayName(c *entity.Combatant) string {
	if c.Side != entity.SideEnemy {
		return c.Name
	}
	if c.Encounter != nil && c.Encounter.IsGymLeader {
		return "Leader's " + c.Name
	}
	return "Wild " + c.Name
}
