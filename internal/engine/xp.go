package engine

const (
	// PureTimeBonus is added when the timer ran without pausing.
	PureTimeBonus = 3

	// HighPriorityBonus applies to priorities 1-3, MidPriorityBonus to 4-6.
	HighPriorityBonus = 3
	MidPriorityBonus  = 1

	// PlannedBonus rewards work tracked through the planner rather than ad hoc.
	PlannedBonus = 2

	// ReflectionXP is the fixed bonus for submitting a daily reflection.
	ReflectionXP = 2
)

func qualityPoints(q TaskQuality) int {
	switch q {
	case QualityA:
		return 8
	case QualityB:
		return 4
	case QualityC:
		return 2
	case QualityD:
		return 1
	default:
		return 0
	}
}

func priorityPoints(priority int) int {
	switch {
	case priority >= 1 && priority <= 3:
		return HighPriorityBonus
	case priority >= 4 && priority <= 6:
		return MidPriorityBonus
	default:
		return 0
	}
}

// ScoreTask computes the XP for one completed task. Additive point model:
// quality base plus pure-time, priority and planner bonuses, multiplied by
// the started-hour count of the actual duration. Deterministic, never
// negative.
func ScoreTask(quality TaskQuality, timeQuality TimeQuality, priority int, origin Column, actualMinutes Minutes) int {
	base := qualityPoints(quality)
	if timeQuality == TimePure {
		base += PureTimeBonus
	}
	base += priorityPoints(priority)
	if origin == ColumnPlan {
		base += PlannedBonus
	}

	mult := 1 + int(actualMinutes)/60
	xp := base * mult
	if xp < 0 {
		return 0
	}
	return xp
}

// NextLevelThreshold returns the total XP needed to advance from the given
// level. Growth flattens after level 5.
func NextLevelThreshold(level int) int {
	if level <= 5 {
		return level * 100
	}
	return 500 + (level-5)*10
}

// PreviousLevelThreshold is the inverse of NextLevelThreshold for the level
// below: the XP floor of the given level. Used when XP is subtracted and the
// level must be walked back down.
func PreviousLevelThreshold(level int) int {
	if level <= 1 {
		return 0
	}
	return NextLevelThreshold(level - 1)
}

// levelForXP derives level and next threshold from scratch, starting at
// level 1. Used for the per-project ledgers, which follow the same curve.
func levelForXP(xp int) (level, nextLevelXP int) {
	level = 1
	next := NextLevelThreshold(level)
	for xp >= next {
		level++
		next = NextLevelThreshold(level)
	}
	return level, next
}
