package engine

import (
	"math"
	"time"

	"github.com/notnil/chess"
)

// TimeControl carries the remaining clock time of both sides as reported
// by the host. The engine only reads it.
type TimeControl struct {
	White time.Duration
	Black time.Duration
}

// Remaining returns the clock of the given side.
func (tc TimeControl) Remaining(c chess.Color) time.Duration {
	if c == chess.White {
		return tc.White
	}
	return tc.Black
}

// SearchInfo describes one completed deepening iteration.
type SearchInfo struct {
	Depth int
	Score int
	Move  *chess.Move
	Time  time.Duration
}

// Result is the engine's answer for one move decision. Move is nil when
// the side to move has no legal moves. Ponder exists for hosts that expect
// an anticipated reply; this engine never fills it.
type Result struct {
	Move   *chess.Move
	Ponder *chess.Move
	Info   SearchInfo
}

// DeepenPolicy decides whether another deepening iteration is worth
// starting, given the last completed iteration, the unspent share of the
// move budget, and the number of legal root moves.
type DeepenPolicy func(prev SearchInfo, unspent time.Duration, moveCount int) bool

// AffordableByBranching is the default DeepenPolicy: the next depth is
// projected to cost the previous depth's duration scaled by the square
// root of the root branching factor, and is started only while that fits
// the unspent budget. A crude predictor, kept as a tunable policy rather
// than a correctness matter.
func AffordableByBranching(prev SearchInfo, unspent time.Duration, moveCount int) bool {
	projected := time.Duration(float64(prev.Time) * math.Sqrt(float64(moveCount)))
	return projected <= unspent
}

// Options tune a single Engine. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	MaxDepth        int           // deepening ceiling
	QuiescenceDepth int           // capture-chain safety cap
	EmergencyClock  time.Duration // at or below this, play one fixed shallow search
	ExpectedMoves   float64       // budget = remaining clock / ExpectedMoves
}

// DefaultOptions returns the tuning the engine plays with out of the box.
func DefaultOptions() Options {
	return Options{
		MaxDepth:        DefaultMaxDepth,
		QuiescenceDepth: DefaultQuiescenceDepth,
		EmergencyClock:  DefaultEmergencyClock,
		ExpectedMoves:   DefaultExpectedMoves,
	}
}

// Engine picks moves by iterative-deepening alpha-beta search under a
// clock. One Engine runs one decision at a time; separate instances are
// independent and may run concurrently.
type Engine struct {
	Options

	// Deepen replaces the affordability policy when set; nil means
	// AffordableByBranching.
	Deepen DeepenPolicy

	// Progress, when set, receives every completed iteration that
	// produced a move.
	Progress func(SearchInfo)

	// Nodes and QNodes count the interior and quiescence nodes of the
	// most recent decision.
	Nodes  uint
	QNodes uint
}

// NewEngine returns an Engine with default options.
func NewEngine() *Engine {
	return &Engine{Options: DefaultOptions()}
}

// DecideMove searches pos and returns the move to play under the given
// clock. The position itself is never modified. With no legal moves the
// Result carries a nil Move; the caller knows whether that is mate or
// stalemate. Every other path returns a legal move: the engine degrades
// from deep search over shallow search down to the first legal move
// rather than failing.
func (e *Engine) DecideMove(pos *chess.Position, clock TimeControl) Result {
	start := time.Now()
	e.Nodes, e.QNodes = 0, 0
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return Result{}
	}

	remaining := clock.Remaining(pos.Turn())
	if remaining <= e.EmergencyClock {
		return e.emergencyMove(pos, moves, start)
	}

	expected := e.ExpectedMoves
	if expected <= 0 {
		expected = DefaultExpectedMoves
	}
	budget := time.Duration(float64(remaining) / expected)
	deadline := start.Add(budget)
	deepen := e.Deepen
	if deepen == nil {
		deepen = AffordableByBranching
	}

	// prev always holds the last completed iteration. Budget overruns and
	// unaffordable depths fall back to it: the iteration that tripped the
	// check may have been cut short and is not trusted.
	var prev SearchInfo
	for d := 0; d <= e.MaxDepth; d++ {
		if d > 0 && !deepen(prev, budget-time.Since(start), len(moves)) {
			return e.finish(prev, moves)
		}
		s := &searcher{maxQuiesce: e.QuiescenceDepth}
		iterStart := time.Now()
		score := s.alphaBeta(pos, 0, d, MinScore, MaxScore, deadline)
		info := SearchInfo{Depth: d, Score: score, Move: s.bestMove, Time: time.Since(iterStart)}
		e.Nodes += s.nodes
		e.QNodes += s.qnodes
		if info.Move != nil && e.Progress != nil {
			e.Progress(info)
		}
		if time.Since(start) >= budget {
			return e.finish(prev, moves)
		}
		prev = info
	}
	return e.finish(prev, moves)
}

// emergencyMove runs the fixed shallow search used when the clock is
// nearly flagged: certainty of answering beats depth.
func (e *Engine) emergencyMove(pos *chess.Position, legal []*chess.Move, start time.Time) Result {
	s := &searcher{maxQuiesce: e.QuiescenceDepth}
	score := s.alphaBeta(pos, 0, emergencyDepth, MinScore, MaxScore, start.Add(emergencyBudget))
	e.Nodes += s.nodes
	e.QNodes += s.qnodes
	info := SearchInfo{Depth: emergencyDepth, Score: score, Move: s.bestMove, Time: time.Since(start)}
	if info.Move != nil && e.Progress != nil {
		e.Progress(info)
	}
	return e.finish(info, legal)
}

// finish wraps an iteration record into a Result, degrading to the first
// legal move when the record never saw one (a depth-0 pass hands straight
// to quiescence and records nothing).
func (e *Engine) finish(info SearchInfo, legal []*chess.Move) Result {
	if info.Move == nil {
		info.Move = legal[0]
	}
	return Result{Move: info.Move, Info: info}
}
