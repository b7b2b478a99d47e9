package engine

import (
	"time"

	"github.com/notnil/chess"
)

// searcher carries the state of one deepening iteration. DecideMove builds
// a fresh one per depth, so records never leak between iterations or
// between decisions.
type searcher struct {
	bestMove   *chess.Move
	maxQuiesce int
	nodes      uint
	qnodes     uint
}

// alphaBeta is a negamax search with alpha-beta pruning, counting plies
// down from the root. At the horizon it hands over to the quiescence
// search instead of evaluating directly. The deadline is polled once per
// sibling move before descending, so a subtree already in flight always
// runs to completion; aborting mid-node returns whatever alpha stands.
func (s *searcher) alphaBeta(pos *chess.Position, ply, maxPly, alpha, beta int, deadline time.Time) int {
	if ply == maxPly {
		return s.quiesce(pos, 0, alpha, beta)
	}
	s.nodes++
	moves := Order(pos)
	if len(moves) == 0 {
		return terminalScore(pos, ply)
	}
	for _, mv := range moves {
		if time.Now().After(deadline) {
			break
		}
		val := -s.alphaBeta(pos.Update(mv), ply+1, maxPly, -beta, -alpha, deadline)
		if val >= beta {
			return beta
		}
		if val > alpha {
			alpha = val
			if ply == 0 {
				s.bestMove = mv
			}
		}
	}
	return alpha
}

// quiesce searches capture chains only, so the horizon never cuts an
// exchange in half. The side to move may always stand pat on the static
// score. depth counts capture plies toward the safety cap; the clock is
// never polled here.
func (s *searcher) quiesce(pos *chess.Position, depth, alpha, beta int) int {
	s.qnodes++
	standPat := Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if depth >= s.maxQuiesce {
		return alpha
	}
	for _, mv := range Captures(pos) {
		val := -s.quiesce(pos.Update(mv), depth+1, -beta, -alpha)
		if val >= beta {
			return beta
		}
		if val > alpha {
			alpha = val
		}
	}
	return alpha
}

// terminalScore scores a position with no legal moves at the given ply:
// mate against the side to move, or a stalemate draw. The ply offset makes
// mates found higher in the tree outrank deeper ones.
func terminalScore(pos *chess.Position, ply int) int {
	if pos.Status() == chess.Checkmate {
		return -MateValue + ply
	}
	return 0
}
