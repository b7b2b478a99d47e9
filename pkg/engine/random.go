package engine

import (
	"math/rand"

	"github.com/notnil/chess"
)

// RandomMove picks a uniformly random legal move, or nil if none exist.
// It is the baseline opponent for driving casual games.
func RandomMove(pos *chess.Position) *chess.Move {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil
	}
	return moves[rand.Intn(len(moves))]
}
