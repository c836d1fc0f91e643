package core

// Goal is a server-managed long-term goal. The client only aggregates over
// its dates; creation and completion live behind the backend API.
type Goal struct {
	ID          string
	Title       string
	Description string
	StartDate   Date
	EndDate     Date // optional
	Completed   bool
}

// DailyLog is one day's habit/journal check-in, server-managed.
type DailyLog struct {
	ID    string
	Date  Date
	Note  string
	Mood  int // optional, 0 when absent
	Tags  []string
	Done  bool
}

// Roadmap is a paginated learning/technical roadmap record.
type Roadmap struct {
	ID        string
	Title     string
	Kind      string // "roadmap" or "technical"
	Progress  float64
	UpdatedAt Date
}
