package domain

// XPPerLevel is the amount of XP needed to advance one level
const XPPerLevel = 100

// Progress holds the local user's XP and derived level
type Progress struct {
	XP    int
	Level int
}

// LevelUp is emitted once for every level boundary crossed
type LevelUp struct {
	Level int
	XP    int
}

// NewProgress builds progress from an XP total, deriving the level
func NewProgress(xp int) Progress {
	if xp < 0 {
		xp = 0
	}
	return Progress{XP: xp, Level: LevelForXP(xp)}
}

// LevelForXP returns floor(xp/100)+1
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// XPIntoLevel returns XP earned inside the current level
func (p Progress) XPIntoLevel() int {
	return p.XP % XPPerLevel
}
