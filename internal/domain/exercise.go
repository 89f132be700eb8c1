package domain

// Exercise represents one catalog exercise.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Series      int    `json:"series"`
	Repetitions int    `json:"repetitions"`
	Demo        string `json:"demo"`
	Thumb       string `json:"thumb"`
}

// RegisterHistoryRequest is the body of POST /history.
type RegisterHistoryRequest struct {
	ExerciseID string `json:"exercise_id"`
}

// HistoryEntry is one completed exercise in the user's history.
type HistoryEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
	Hour  string `json:"hour"`
}

// HistoryDay groups history entries under a day title, the shape the
// history endpoint returns.
type HistoryDay struct {
	Title   string         `json:"title"`
	Entries []HistoryEntry `json:"data"`
}
