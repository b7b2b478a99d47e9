package engine

import "time"

// Material weights in centipawns.
const (
	PawnValue   = 100
	KnightValue = 305
	BishopValue = 333
	RookValue   = 563
	QueenValue  = 950
)

// MateValue is the sentinel magnitude for mate scores. A mate reached at
// search ply p scores MateValue-p, so nearer mates always rank higher.
const MateValue = 100000

// MaxScore is bigger than any reachable evaluation.
const MaxScore = 1000000

// MinScore is smaller than any reachable evaluation.
const MinScore = -1000000

// endgameMaterial is the non-pawn material below which a side counts as
// being in the endgame.
const endgameMaterial = 1300

// Move ordering weights. Castling short-circuits the heuristic with a
// fixed score, checks are searched ahead of everything but big captures.
const (
	castleScore = 200
	checkBonus  = 1000
)

// Search and clock-management defaults, overridable through Options.
const (
	DefaultMaxDepth        = 10
	DefaultQuiescenceDepth = 32
	DefaultEmergencyClock  = 5 * time.Second
	DefaultExpectedMoves   = 32.5
)

// Emergency behavior once the clock is nearly flagged.
const (
	emergencyDepth  = 2
	emergencyBudget = 24 * time.Hour // effectively unbounded
)

// Piece-square tables in centipawns. All tables are written from White's
// point of view with a1 at index 0; Black pieces read them through the
// rotated index 63-square.

var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	100, 100, 100, 100, 100, 100, 100, 100,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// kingTable keeps the king safe behind its pawns while material is still
// on the board.
var kingTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

// kingEndgameTable pushes the king toward the center once queens are off
// or material is thin.
var kingEndgameTable = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}
