package domain

// Level is one step of the course, aligned with a WCAG conformance level
type Level struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
	Topic string `json:"topic"`
}

var levels = []Level{
	{ID: 1, Code: "A", Title: "Foundations", Topic: "WCAG level A: text alternatives, keyboard access, page titles and form labels"},
	{ID: 2, Code: "AA", Title: "Everyday accessibility", Topic: "WCAG level AA: colour contrast, resizable text, focus visibility and consistent navigation"},
	{ID: 3, Code: "AAA", Title: "Enhanced accessibility", Topic: "WCAG level AAA: enhanced contrast, sign language, reading level and context-sensitive help"},
}

// TotalLevels is the number of levels in the course
func TotalLevels() int {
	return len(levels)
}

// Levels returns all levels in order
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// LevelByID returns the level with the given ID
func LevelByID(id int) (Level, bool) {
	if id < 1 || id > len(levels) {
		return Level{}, false
	}
	return levels[id-1], true
}
