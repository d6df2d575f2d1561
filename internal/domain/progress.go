package domain

import "time"

// ScoreEntry is one submitted quiz result
type ScoreEntry struct {
	LevelID   int       `json:"levelId" db:"level_id"`
	Score     int       `json:"score" db:"score"`
	Total     int       `json:"total" db:"total"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}

// UserProgress is a learner's position in the course
type UserProgress struct {
	MaxLevel      int                 `json:"maxLevel"`
	History       []ScoreEntry        `json:"history"`
	CachedLessons map[int]StudyLesson `json:"cachedLessons"`
}

// NewUserProgress returns progress for a learner who has not started yet
func NewUserProgress() *UserProgress {
	return &UserProgress{
		MaxLevel:      1,
		History:       []ScoreEntry{},
		CachedLessons: map[int]StudyLesson{},
	}
}

// Passed reports whether correct out of total reaches the two-thirds pass mark
func Passed(correct, total int) bool {
	if total <= 0 || correct < 0 {
		return false
	}
	return correct*3 >= total*2
}

// CanAccess reports whether the level is unlocked
func (p *UserProgress) CanAccess(levelID int) bool {
	return levelID >= 1 && levelID <= p.MaxLevel
}

// Record appends a result and unlocks the next level when the current
// highest level is passed. It returns true if a level was unlocked.
func (p *UserProgress) Record(levelID, correct, total int, at time.Time) bool {
	p.History = append(p.History, ScoreEntry{
		LevelID:   levelID,
		Score:     correct,
		Total:     total,
		Timestamp: at,
	})

	if !Passed(correct, total) || levelID != p.MaxLevel || levelID >= TotalLevels() {
		return false
	}
	p.MaxLevel++
	return true
}

// Completed reports whether the final level has been passed
func (p *UserProgress) Completed() bool {
	final := TotalLevels()
	if p.MaxLevel < final {
		return false
	}
	for _, e := range p.History {
		if e.LevelID == final && Passed(e.Score, e.Total) {
			return true
		}
	}
	return false
}

// BestScore returns the best entry for a level, if any
func (p *UserProgress) BestScore(levelID int) (ScoreEntry, bool) {
	var best ScoreEntry
	found := false
	for _, e := range p.History {
		if e.LevelID != levelID {
			continue
		}
		// Compare ratios without floats: a/b > c/d  <=>  a*d > c*b
		if !found || e.Score*best.Total > best.Score*e.Total {
			best = e
			found = true
		}
	}
	return best, found
}
