package engine

import (
	"sort"

	"github.com/notnil/chess"
)

type scoredMove struct {
	move  *chess.Move
	score int
}

type byScore []scoredMove

func (a byScore) Len() int           { return len(a) }
func (a byScore) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byScore) Less(i, j int) bool { return a[i].score > a[j].score }

// Order returns the full legal move list for pos with the most promising
// candidates first, so the alpha-beta search prunes early. The result is a
// permutation of the rules engine's legal moves.
func Order(pos *chess.Position) []*chess.Move {
	moves := pos.ValidMoves()
	scored := make([]scoredMove, len(moves))
	for i, mv := range moves {
		scored[i] = scoredMove{move: mv, score: moveScore(pos, mv)}
	}
	sort.Stable(byScore(scored))
	out := make([]*chess.Move, len(scored))
	for i := range scored {
		out[i] = scored[i].move
	}
	return out
}

// Captures returns the capture subset of the legal moves for the
// quiescence search, unordered.
func Captures(pos *chess.Position) []*chess.Move {
	var out []*chess.Move
	for _, mv := range pos.ValidMoves() {
		if isCapture(mv) {
			out = append(out, mv)
		}
	}
	return out
}

// isCapture covers en passant as well; those moves land on an empty
// square, so the rules engine tags them separately from plain captures.
func isCapture(mv *chess.Move) bool {
	return mv.HasTag(chess.Capture) || mv.HasTag(chess.EnPassant)
}

// moveScore is the ordering heuristic. Castling takes a fixed score and
// skips everything else. Checks come first, then captures weighted by the
// captured piece, then quiet moves by how much the destination square
// improves on the origin. King moves skip the positional term so the
// endgame state never has to be computed here.
func moveScore(pos *chess.Position, mv *chess.Move) int {
	if mv.HasTag(chess.KingSideCastle) || mv.HasTag(chess.QueenSideCastle) {
		return castleScore
	}
	board := pos.Board()
	piece := board.Piece(mv.S1()).Type()
	score := 0
	if mv.HasTag(chess.Check) {
		score += checkBonus
	}
	if isCapture(mv) {
		if mv.HasTag(chess.EnPassant) {
			score += PawnValue
		} else {
			score += pieceValue(board.Piece(mv.S2()).Type())
		}
	}
	if piece != chess.King {
		score += positionalValue(piece, mv.S2(), pos.Turn(), false) -
			positionalValue(piece, mv.S1(), pos.Turn(), false)
	}
	return score
}
