package engine

import (
	"testing"
	"time"

	"github.com/notnil/chess"
)

// refQuiesce is quiesce without pruning: the true value of the capture
// tree under the stand-pat rule.
func refQuiesce(pos *chess.Position, depth, limit int) int {
	standPat := Evaluate(pos)
	if depth >= limit {
		return standPat
	}
	best := standPat
	for _, mv := range Captures(pos) {
		if val := -refQuiesce(pos.Update(mv), depth+1, limit); val > best {
			best = val
		}
	}
	return best
}

// refSearch is a full-width negamax with no pruning and no clock,
// sharing the horizon and terminal rules of the real search.
func refSearch(pos *chess.Position, ply, maxPly, limit int) int {
	if ply == maxPly {
		return refQuiesce(pos, 0, limit)
	}
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return terminalScore(pos, ply)
	}
	best := MinScore
	for _, mv := range moves {
		if val := -refSearch(pos.Update(mv), ply+1, maxPly, limit); val > best {
			best = val
		}
	}
	return best
}

func farDeadline() time.Time {
	return time.Now().Add(time.Hour)
}

func TestAlphaBetaMatchesFullSearch(t *testing.T) {
	// Pruning may only change which nodes are visited, never the root
	// value. The property holds for any capture cap shared by both
	// searches; a shallow one keeps the unpruned reference tractable
	// (at the engine default its capture tree does not terminate in
	// useful time on the sharper fixtures).
	const quiesceCap = 4
	cases := []struct {
		fen      string
		maxDepth int
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3},
		{"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 2 3", 2},
		{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 3},
		{"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", 3},
	}
	for _, tc := range cases {
		pos := position(t, tc.fen)
		for d := 1; d <= tc.maxDepth; d++ {
			s := &searcher{maxQuiesce: quiesceCap}
			got := s.alphaBeta(pos, 0, d, MinScore, MaxScore, farDeadline())
			want := refSearch(pos, 0, d, quiesceCap)
			if got != want {
				t.Errorf("%s depth %d: pruned search %d, full search %d", tc.fen, d, got, want)
			}
		}
	}
}

func TestTerminalScore(t *testing.T) {
	mate := position(t, "R3k3/8/4K3/8/8/8/8/8 b - - 0 1")
	if got := terminalScore(mate, 0); got != -MateValue {
		t.Errorf("mate at root scores %d, want %d", got, -MateValue)
	}
	if got := terminalScore(mate, 5); got != -MateValue+5 {
		t.Errorf("mate at ply 5 scores %d, want %d", got, -MateValue+5)
	}
	stale := position(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := terminalScore(stale, 3); got != 0 {
		t.Errorf("stalemate scores %d, want 0", got)
	}
}

func TestAlphaBetaCheckmatedRoot(t *testing.T) {
	pos := position(t, "R3k3/8/4K3/8/8/8/8/8 b - - 0 1")
	s := &searcher{maxQuiesce: DefaultQuiescenceDepth}
	if got := s.alphaBeta(pos, 0, 3, MinScore, MaxScore, farDeadline()); got != -MateValue {
		t.Errorf("checkmated root scores %d, want %d", got, -MateValue)
	}
	if s.bestMove != nil {
		t.Errorf("checkmated root recorded move %s", s.bestMove)
	}
}

func TestAlphaBetaStalematedRoot(t *testing.T) {
	pos := position(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	s := &searcher{maxQuiesce: DefaultQuiescenceDepth}
	if got := s.alphaBeta(pos, 0, 2, MinScore, MaxScore, farDeadline()); got != 0 {
		t.Errorf("stalemated root scores %d, want 0", got)
	}
}

func TestAlphaBetaFindsBackRankMate(t *testing.T) {
	// Ra8 mates. The mated reply node sits below the horizon at depth 2
	// and up, so the search must report it as a mate in one.
	pos := position(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	for d := 2; d <= 4; d++ {
		s := &searcher{maxQuiesce: DefaultQuiescenceDepth}
		got := s.alphaBeta(pos, 0, d, MinScore, MaxScore, farDeadline())
		if got != MateValue-1 {
			t.Errorf("depth %d scores %d, want %d", d, got, MateValue-1)
		}
		if s.bestMove == nil || s.bestMove.String() != "a1a8" {
			t.Errorf("depth %d plays %v, want a1a8", d, s.bestMove)
		}
	}
}

func TestQuiesceQuietPositionIsStatic(t *testing.T) {
	pos := position(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	s := &searcher{maxQuiesce: DefaultQuiescenceDepth}
	if got, want := s.quiesce(pos, 0, MinScore, MaxScore), Evaluate(pos); got != want {
		t.Errorf("quiet position quiesces to %d, want static %d", got, want)
	}
}

func TestQuiesceDepthCap(t *testing.T) {
	// A queen hangs on d5. With the capture search capped off the score
	// is the raw static one; with it on, the pawn wins the queen.
	pos := position(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	capped := &searcher{maxQuiesce: 0}
	s0 := capped.quiesce(pos, 0, MinScore, MaxScore)
	if want := Evaluate(pos); s0 != want {
		t.Errorf("capped quiescence scores %d, want static %d", s0, want)
	}
	full := &searcher{maxQuiesce: DefaultQuiescenceDepth}
	if s32 := full.quiesce(pos, 0, MinScore, MaxScore); s32 <= s0 {
		t.Errorf("capture search scores %d, not above static %d", s32, s0)
	}
}

func TestAlphaBetaDepthOneRecordsOpeningMove(t *testing.T) {
	pos := position(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	legal := pos.ValidMoves()
	if len(legal) != 20 {
		t.Fatalf("%d opening moves generated, want 20", len(legal))
	}
	s := &searcher{maxQuiesce: DefaultQuiescenceDepth}
	s.alphaBeta(pos, 0, 1, MinScore, MaxScore, farDeadline())
	if s.bestMove == nil {
		t.Fatal("no move recorded at depth 1")
	}
	found := false
	for _, mv := range legal {
		if mv.String() == s.bestMove.String() {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("recorded move %s is not a legal opening move", s.bestMove)
	}
}

func TestSearchCountsNodes(t *testing.T) {
	pos := position(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	s := &searcher{maxQuiesce: DefaultQuiescenceDepth}
	s.alphaBeta(pos, 0, 2, MinScore, MaxScore, farDeadline())
	if s.nodes == 0 {
		t.Error("no interior nodes counted")
	}
	if s.qnodes == 0 {
		t.Error("no quiescence nodes counted")
	}
}
