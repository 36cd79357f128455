package entities

// DefaultLessonsPerSubject is used when a subject's catalog size is unknown.
const DefaultLessonsPerSubject = 3

// Stats holds the platform counters shown on the home screen.
type Stats struct {
	PythonLessons     int `json:"python_lessons"`
	JavaScriptLessons int `json:"javascript_lessons"`
	TotalUsers        int `json:"total_users"`
	ActiveToday       int `json:"active_today"`
}

// FallbackStats returns the counters shown when the server is unreachable.
func FallbackStats(loggedIn bool) Stats {
	users := 0
	if loggedIn {
		users = 1
	}
	return Stats{
		PythonLessons:     DefaultLessonsPerSubject,
		JavaScriptLessons: DefaultLessonsPerSubject,
		TotalUsers:        users,
		ActiveToday:       1,
	}
}

// WithDefaults replaces zero counters with the fallback values.
func (s Stats) WithDefaults(loggedIn bool) Stats {
	def := FallbackStats(loggedIn)
	if s.PythonLessons == 0 {
		s.PythonLessons = def.PythonLessons
	}
	if s.JavaScriptLessons == 0 {
		s.JavaScriptLessons = def.JavaScriptLessons
	}
	if s.TotalUsers == 0 {
		s.TotalUsers = def.TotalUsers
	}
	if s.ActiveToday == 0 {
		s.ActiveToday = def.ActiveToday
	}
	return s
}

// LessonCount returns the catalog size reported for a subject.
func (s Stats) LessonCount(subject Subject) int {
	switch subject {
	case SubjectPython:
		return s.PythonLessons
	case SubjectJavaScript:
		return s.JavaScriptLessons
	default:
		return 0
	}
}

// RankingEntry is one row of the leaderboard.
type RankingEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}
