package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{250, 3},
		{1000, 11},
		{-5, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, LevelFor(c.xp), "xp=%d", c.xp)
	}
}

func TestDetectLevelUp(t *testing.T) {
	up, ok := DetectLevelUp(90, 130)
	assert.True(t, ok)
	assert.Equal(t, LevelUp{OldLevel: 1, NewLevel: 2}, up)

	_, ok = DetectLevelUp(100, 199)
	assert.False(t, ok)

	up, ok = DetectLevelUp(0, 350)
	assert.True(t, ok)
	assert.Equal(t, LevelUp{OldLevel: 1, NewLevel: 4}, up)

	_, ok = DetectLevelUp(300, 300)
	assert.False(t, ok)
}

func TestProgressFor(t *testing.T) {
	p := ProgressFor(250)
	assert.Equal(t, Progress{Level: 3, XP: 250, CurrentLevelXP: 200, NextLevelXP: 300, IntoLevel: 50}, p)
}

func TestLevelForProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 1_000_000).Draw(rt, "a")
		b := rapid.IntRange(0, 1_000_000).Draw(rt, "b")

		la := LevelFor(a)
		if la < 1 {
			rt.Fatalf("level %d below 1 for xp %d", la, a)
		}
		if la != LevelFor(a) {
			rt.Fatalf("LevelFor not deterministic for %d", a)
		}
		if ThresholdFor(la) > a || ThresholdFor(la+1) <= a {
			rt.Fatalf("xp %d outside thresholds of level %d", a, la)
		}
		if a <= b && LevelFor(a) > LevelFor(b) {
			rt.Fatalf("LevelFor not monotonic: %d -> %d", a, b)
		}

		up, ok := DetectLevelUp(a, b)
		if ok != (LevelFor(b) > LevelFor(a)) {
			rt.Fatalf("DetectLevelUp(%d, %d) = %v", a, b, ok)
		}
		if ok && (up.OldLevel != LevelFor(a) || up.NewLevel != LevelFor(b)) {
			rt.Fatalf("unexpected transition %+v", up)
		}
	})
}
