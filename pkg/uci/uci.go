package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/notnil/chess"

	"ratatosk/pkg/engine"
)

// mateBand separates mate scores from centipawn scores; no static
// evaluation comes anywhere near it.
const mateBand = 1000

// ampleClock is handed to the engine for depth-limited and infinite
// searches, so the clock allocator never cuts them short.
const ampleClock = 8 * time.Hour

// Protocol adapts the engine to the Universal Chess Interface. Commands
// are handled line by line; go runs the search synchronously and answers
// with bestmove, so a stop arriving mid-search is not honored (the
// engine's only cancellation is its own deadline).
type Protocol struct {
	name    string
	version string
	eng     *engine.Engine
	game    *chess.Game
	out     io.Writer
}

// New returns a Protocol speaking for eng on out, starting from the
// initial position.
func New(eng *engine.Engine, out io.Writer) *Protocol {
	return &Protocol{
		name:    "Ratatosk",
		version: "1.0.0",
		eng:     eng,
		game:    chess.NewGame(),
		out:     out,
	}
}

// Run reads commands from in until quit or EOF. Failing commands are
// reported as info strings and never end the loop.
func (p *Protocol) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			return nil
		}
		if err := p.Handle(line); err != nil {
			fmt.Fprintf(p.out, "info string error %v\n", err)
		}
	}
	return scanner.Err()
}

// Handle dispatches a single command line.
func (p *Protocol) Handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "uci":
		p.uciCommand()
	case "isready":
		fmt.Fprintln(p.out, "readyok")
	case "ucinewgame":
		p.game = chess.NewGame()
	case "setoption":
		return p.setOptionCommand(args)
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(args)
	case "stop":
		// nothing in flight by the time this is read
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

func (p *Protocol) uciCommand() {
	fmt.Fprintf(p.out, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(p.out, "id author the %s developers\n", p.name)
	fmt.Fprintf(p.out, "option name MaxDepth type spin default %d min 1 max 30\n", engine.DefaultMaxDepth)
	fmt.Fprintf(p.out, "option name QuiescenceDepth type spin default %d min 0 max 64\n", engine.DefaultQuiescenceDepth)
	fmt.Fprintln(p.out, "uciok")
}

func (p *Protocol) setOptionCommand(args []string) error {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return fmt.Errorf("setoption: want name <option> value <n>")
	}
	value, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("setoption %s: %w", args[1], err)
	}
	switch strings.ToLower(args[1]) {
	case "maxdepth":
		p.eng.MaxDepth = value
	case "quiescencedepth":
		p.eng.QuiescenceDepth = value
	default:
		return fmt.Errorf("setoption: unknown option %q", args[1])
	}
	return nil
}

func (p *Protocol) positionCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position: missing arguments")
	}
	movesAt := len(args)
	for i, a := range args {
		if a == "moves" {
			movesAt = i
			break
		}
	}
	var game *chess.Game
	switch args[0] {
	case "startpos":
		game = chess.NewGame()
	case "fen":
		fen, err := chess.FEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			return err
		}
		game = chess.NewGame(fen)
	default:
		return fmt.Errorf("position: want startpos or fen, got %q", args[0])
	}
	if movesAt < len(args) {
		for _, ms := range args[movesAt+1:] {
			move, err := chess.UCINotation{}.Decode(game.Position(), ms)
			if err != nil {
				return err
			}
			if err := game.Move(move); err != nil {
				return err
			}
		}
	}
	p.game = game
	return nil
}

// limits is the subset of go arguments the engine honors. Increment and
// movestogo fields are parsed past and ignored.
type limits struct {
	whiteTime time.Duration
	blackTime time.Duration
	moveTime  time.Duration
	depth     int
	infinite  bool
}

func parseLimits(args []string) (limits, error) {
	var l limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime", "btime", "movetime":
			if i+1 >= len(args) {
				return l, fmt.Errorf("go %s: missing value", args[i])
			}
			ms, err := strconv.Atoi(args[i+1])
			if err != nil {
				return l, fmt.Errorf("go %s: %w", args[i], err)
			}
			d := time.Duration(ms) * time.Millisecond
			switch args[i] {
			case "wtime":
				l.whiteTime = d
			case "btime":
				l.blackTime = d
			case "movetime":
				l.moveTime = d
			}
			i++
		case "depth":
			if i+1 >= len(args) {
				return l, fmt.Errorf("go depth: missing value")
			}
			d, err := strconv.Atoi(args[i+1])
			if err != nil {
				return l, fmt.Errorf("go depth: %w", err)
			}
			l.depth = d
			i++
		case "infinite":
			l.infinite = true
		case "winc", "binc", "movestogo", "nodes", "mate":
			i++
		}
	}
	return l, nil
}

func (p *Protocol) goCommand(args []string) error {
	l, err := parseLimits(args)
	if err != nil {
		return err
	}
	clock, restore := p.applyLimits(l)
	defer restore()
	pos := p.game.Position()
	p.eng.Progress = func(si engine.SearchInfo) {
		fmt.Fprintf(p.out, "info depth %d score %s time %d nodes %d\n",
			si.Depth, scoreString(si.Score), si.Time.Milliseconds(), p.eng.Nodes+p.eng.QNodes)
	}
	res := p.eng.DecideMove(pos, clock)
	if res.Move == nil {
		fmt.Fprintln(p.out, "bestmove 0000")
		return nil
	}
	fmt.Fprintf(p.out, "bestmove %s\n", chess.UCINotation{}.Encode(pos, res.Move))
	return nil
}

// applyLimits maps go arguments onto a clock, temporarily retuning the
// engine for depth-limited searches. The restore func undoes the
// retuning.
func (p *Protocol) applyLimits(l limits) (engine.TimeControl, func()) {
	saved := p.eng.Options
	restore := func() { p.eng.Options = saved }
	switch {
	case l.depth > 0:
		p.eng.MaxDepth = l.depth
		return engine.TimeControl{White: ampleClock, Black: ampleClock}, restore
	case l.infinite:
		return engine.TimeControl{White: ampleClock, Black: ampleClock}, restore
	case l.moveTime > 0:
		// a synthetic clock whose fixed fraction equals the requested
		// time; emergency routing is off so a short request keeps its
		// budget instead of triggering the fixed shallow search
		expected := p.eng.ExpectedMoves
		if expected <= 0 {
			expected = engine.DefaultExpectedMoves
		}
		c := time.Duration(float64(l.moveTime) * expected)
		p.eng.EmergencyClock = 0
		return engine.TimeControl{White: c, Black: c}, restore
	default:
		return engine.TimeControl{White: l.whiteTime, Black: l.blackTime}, restore
	}
}

// scoreString renders a score as a UCI score field, translating the mate
// band into moves to mate (negative when the engine is being mated).
func scoreString(score int) string {
	if score > engine.MateValue-mateBand {
		return fmt.Sprintf("mate %d", (engine.MateValue-score+1)/2)
	}
	if score < -engine.MateValue+mateBand {
		return fmt.Sprintf("mate %d", -(engine.MateValue+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
