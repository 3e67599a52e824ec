// ABOUTME: Level computation from cumulative XP via a fixed threshold table.
// ABOUTME: Ten tiers, monotonic, saturating at level 10.
package gamify

// levelThresholds holds the minimum XP required to attain each level,
// 1-indexed by position.
var levelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3000, 5000, 7500, 10000}

// MaxLevel is the level cap.
const MaxLevel = 10

// LevelFromXP returns the highest level whose threshold is at or below
// the given XP, clamped to MaxLevel. Negative XP maps to level 1.
func LevelFromXP(xp int) int {
	level := 1
	for i := 1; i < len(levelThresholds); i++ {
		if xp >= levelThresholds[i] {
			level = i + 1
		}
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return level
}

// XPForLevel returns the minimum XP needed for the given level, used
// for progress display. Levels outside [1, MaxLevel] are clamped.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelThresholds[level-1]
}
