package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPassed(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		expected bool
	}{
		{name: "exactly two thirds", correct: 2, total: 3, expected: true},
		{name: "four of six", correct: 4, total: 6, expected: true},
		{name: "all correct", correct: 6, total: 6, expected: true},
		{name: "just under", correct: 3, total: 5, expected: false},
		{name: "one of three", correct: 1, total: 3, expected: false},
		{name: "zero total", correct: 0, total: 0, expected: false},
		{name: "negative score", correct: -1, total: 3, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Passed(tt.correct, tt.total))
		})
	}
}

func TestUserProgress_Record(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		maxLevel         int
		levelID          int
		correct          int
		total            int
		expectedUnlocked bool
		expectedMax      int
	}{
		{name: "pass current level unlocks next", maxLevel: 1, levelID: 1, correct: 2, total: 3, expectedUnlocked: true, expectedMax: 2},
		{name: "fail current level", maxLevel: 1, levelID: 1, correct: 1, total: 3, expectedUnlocked: false, expectedMax: 1},
		{name: "pass earlier level does not advance", maxLevel: 3, levelID: 1, correct: 3, total: 3, expectedUnlocked: false, expectedMax: 3},
		{name: "pass final level stays at final", maxLevel: 3, levelID: 3, correct: 3, total: 3, expectedUnlocked: false, expectedMax: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewUserProgress()
			p.MaxLevel = tt.maxLevel

			unlocked := p.Record(tt.levelID, tt.correct, tt.total, now)

			assert.Equal(t, tt.expectedUnlocked, unlocked)
			assert.Equal(t, tt.expectedMax, p.MaxLevel)
			assert.Len(t, p.History, 1)
			assert.Equal(t, ScoreEntry{LevelID: tt.levelID, Score: tt.correct, Total: tt.total, Timestamp: now}, p.History[0])
		})
	}
}

func TestUserProgress_RecordAdvancesOneLevelAtATime(t *testing.T) {
	p := NewUserProgress()
	now := time.Now()

	p.Record(1, 3, 3, now)
	p.Record(1, 3, 3, now)

	assert.Equal(t, 2, p.MaxLevel)
}

func TestUserProgress_CanAccess(t *testing.T) {
	p := NewUserProgress()
	p.MaxLevel = 2

	assert.False(t, p.CanAccess(0))
	assert.True(t, p.CanAccess(1))
	assert.True(t, p.CanAccess(2))
	assert.False(t, p.CanAccess(3))
}

func TestUserProgress_Completed(t *testing.T) {
	now := time.Now()

	p := NewUserProgress()
	assert.False(t, p.Completed())

	p.Record(1, 3, 3, now)
	p.Record(2, 3, 3, now)
	assert.Equal(t, 3, p.MaxLevel)
	assert.False(t, p.Completed())

	p.Record(3, 1, 3, now)
	assert.False(t, p.Completed())

	p.Record(3, 2, 3, now)
	assert.True(t, p.Completed())
}

func TestUserProgress_BestScore(t *testing.T) {
	now := time.Now()
	p := NewUserProgress()

	_, ok := p.BestScore(1)
	assert.False(t, ok)

	p.Record(1, 1, 3, now)
	p.Record(1, 5, 6, now)
	p.Record(1, 2, 3, now)

	best, ok := p.BestScore(1)
	assert.True(t, ok)
	assert.Equal(t, 5, best.Score)
	assert.Equal(t, 6, best.Total)
}
