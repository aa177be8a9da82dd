package tournamentqueue

// RaffleDrawJob is a scheduled raffle draw. At the scheduled time the worker
// picks the winners from the current standings and publishes the result.
type RaffleDrawJob struct {
	TournamentID string `json:"tournament_id"`
	DrawID       string `json:"draw_id"`
	WinnerCount  int    `json:"winner_count"`
}

// Kind returns the job type identifier for River.
func (RaffleDrawJob) Kind() string { return "raffle_draw" }
