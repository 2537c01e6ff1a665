// leveling/leveling.go
package leveling

// XPPerLevel her seviye için gereken sabit XP miktarıdır (0, 100, 200, ...).
const XPPerLevel = 100

type LevelUp struct {
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

type Progress struct {
	Level          int `json:"level"`
	XP             int `json:"xp"`
	CurrentLevelXP int `json:"current_level_xp"`
	NextLevelXP    int `json:"next_level_xp"`
	IntoLevel      int `json:"into_level"`
}

// LevelFor birikmiş XP'den seviyeyi hesaplar. Negatif değerler 0 sayılır.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ThresholdFor seviyeye ulaşmak için gereken en düşük XP.
func ThresholdFor(level int) int {
	if level < 1 {
		level = 1
	}
	return XPPerLevel * (level - 1)
}

func DetectLevelUp(oldXP, newXP int) (LevelUp, bool) {
	oldLevel, newLevel := LevelFor(oldXP), LevelFor(newXP)
	if newLevel > oldLevel {
		return LevelUp{OldLevel: oldLevel, NewLevel: newLevel}, true
	}
	return LevelUp{}, false
}

func ProgressFor(xp int) Progress {
	if xp < 0 {
		xp = 0
	}
	level := LevelFor(xp)
	current := ThresholdFor(level)
	return Progress{
		Level:          level,
		XP:             xp,
		CurrentLevelXP: current,
		NextLevelXP:    ThresholdFor(level + 1),
		IntoLevel:      xp - current,
	}
}
