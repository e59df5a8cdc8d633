package main

// RunSummary is one row from the run registry, shaped for the API.
type RunSummary struct {
	ID         string  `json:"id"`
	Strategy   string  `json:"strategy"`
	ConfigJSON string  `json:"config_json"`
	Episodes   int64   `json:"episodes"`
	MeanScore  float64 `json:"mean_score"`
	MinScore   int64   `json:"min_score"`
	MaxScore   int64   `json:"max_score"`
	ElapsedMs  int64   `json:"elapsed_ms"`
	StartedNs  int64   `json:"started_ns"`
}

// StrategySummary aggregates final episode scores per strategy across
// every archived run.
type StrategySummary struct {
	Strategy  string  `json:"strategy"`
	Episodes  int64   `json:"episodes"`
	MeanScore float64 `json:"mean_score"`
	MinScore  int64   `json:"min_score"`
	MaxScore  int64   `json:"max_score"`
	MeanTurns float64 `json:"mean_turns"`
}

// EpisodeSummary is one archived episode within a run.
type EpisodeSummary struct {
	RunID      string `json:"run_id"`
	Strategy   string `json:"strategy"`
	Episode    int64  `json:"episode"`
	Seed       int64  `json:"seed"`
	Turns      int32  `json:"turns"`
	FinalScore int64  `json:"final_score"`
}

// TurnFrame is one archived turn of an episode. Move is -1 on the
// terminal frame. Cells is the board row-major, y*width+x.
type TurnFrame struct {
	Turn      int32   `json:"turn"`
	Width     int32   `json:"width"`
	Height    int32   `json:"height"`
	AgentX    int32   `json:"agent_x"`
	AgentY    int32   `json:"agent_y"`
	Move      int32   `json:"move"`
	GameScore int64   `json:"game_score"`
	Cells     []int32 `json:"cells"`
}

// EpisodesResponse wraps the episode listing for a run.
type EpisodesResponse struct {
	RunID    string           `json:"run_id"`
	Episodes []EpisodeSummary `json:"episodes"`
}

// TurnsResponse wraps the full frame list for one episode.
type TurnsResponse struct {
	RunID   string      `json:"run_id"`
	Episode int64       `json:"episode"`
	Turns   []TurnFrame `json:"turns"`
}
