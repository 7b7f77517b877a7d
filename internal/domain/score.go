package domain

// Simulated credit score bounds. The simulated score mirrors the FICO range
// and is clamped after every update.
const (
	MinSimulatedScore = 300
	MaxSimulatedScore = 850
)

// ClampScore bounds a simulated score to [MinSimulatedScore, MaxSimulatedScore].
func ClampScore(score int) int {
	if score < MinSimulatedScore {
		return MinSimulatedScore
	}
	if score > MaxSimulatedScore {
		return MaxSimulatedScore
	}
	return score
}
