// Package progression turns experience into levels, learned moves and
// evolutions.
package progression

// ExperienceToNext returns the experience needed to advance from level to
// level+1.
func ExperienceToNext(level int) int {
	if level < 1 {
		level = 1
	}
	return level * level * level
}
