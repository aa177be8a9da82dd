// Package scoring holds the pure point formulas shared by the projector and
// the round-end algorithm.
package scoring

// EliminationPoints returns the points earned for a number of eliminations.
func EliminationPoints(eliminations, killPoints int) int {
	return eliminations * killPoints
}

// PlacementPoints returns the points awarded for a 1-based rank. Ranks beyond
// the configured table earn zero; that is a valid outcome, not an error.
func PlacementPoints(rank int, table []int) int {
	if rank < 1 || rank > len(table) {
		return 0
	}
	return table[rank-1]
}
