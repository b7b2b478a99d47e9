package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tm "github.com/buger/goterm"
	"github.com/notnil/chess"

	"ratatosk/pkg/config"
	"ratatosk/pkg/engine"
)

var auto = flag.Bool("auto", false, "let a random mover play White instead of reading moves")
var startFEN = flag.String("fen", "", "start from this FEN instead of the initial position")

var (
	game   *chess.Game
	eng    *engine.Engine
	cfg    *config.Config
	reader *bufio.Reader
	clock  engine.TimeControl
)

func main() {
	flag.Parse()
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatal(err)
	}
	game = chess.NewGame()
	if *startFEN != "" {
		fen, err := chess.FEN(*startFEN)
		if err != nil {
			log.Fatalf("bad fen: %v", err)
		}
		game = chess.NewGame(fen)
	}
	eng = engine.NewEngine()
	eng.MaxDepth = cfg.MaxDepth
	eng.QuiescenceDepth = cfg.QuiescenceDepth
	reader = bufio.NewReader(os.Stdin)
	perSide := time.Duration(cfg.ClockSeconds) * time.Second
	clock = engine.TimeControl{White: perSide, Black: perSide}

	for game.Outcome() == chess.NoOutcome {
		takeTurn()
	}
	drawBoard()
	reportOutcome()
}

// takeTurn plays one half-move: White from stdin or the random mover,
// Black from the engine. Thinking time comes off the mover's clock.
func takeTurn() {
	drawBoard()
	if game.Position().Turn() == chess.White {
		if *auto {
			randomTurn()
			return
		}
		humanTurn()
		return
	}
	engineTurn()
}

func drawBoard() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Println(tm.Bold("ratatosk"))
	tm.Println(game.Position().Board().Draw())
	moves := game.Moves()
	if len(moves) > 0 {
		tm.Printf("last move: %s\n", moves[len(moves)-1])
	}
	tm.Printf("clock  W %v | B %v\n", clock.White.Round(time.Second), clock.Black.Round(time.Second))
	tm.Flush()
}

func humanTurn() {
	start := time.Now()
	for {
		fmt.Print("your move> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal(err)
		}
		if err := game.MoveStr(strings.TrimSpace(text)); err != nil {
			fmt.Printf("[RTK] illegal move: %v\n", err)
			continue
		}
		break
	}
	clock.White -= time.Since(start)
}

func randomTurn() {
	mv := engine.RandomMove(game.Position())
	if mv == nil {
		return
	}
	if err := game.Move(mv); err != nil {
		log.Fatal(err)
	}
	// keep auto games watchable
	time.Sleep(200 * time.Millisecond)
}

func engineTurn() {
	if cfg.ShowStats {
		eng.Progress = func(si engine.SearchInfo) {
			fmt.Printf("[RTK] depth %d score %d in %v\n", si.Depth, si.Score, si.Time.Round(time.Millisecond))
		}
	}
	start := time.Now()
	res := eng.DecideMove(game.Position(), clock)
	thought := time.Since(start)
	clock.Black -= thought
	if res.Move == nil {
		return
	}
	if err := game.Move(res.Move); err != nil {
		log.Fatal(err)
	}
	if cfg.ShowStats {
		fmt.Printf("[RTK] played %s after %v at depth %d (%d nodes)\n",
			res.Move, thought.Round(time.Millisecond), res.Info.Depth, eng.Nodes+eng.QNodes)
	}
}

func reportOutcome() {
	switch game.Method() {
	case chess.Checkmate:
		if game.Outcome() == chess.WhiteWon {
			fmt.Println("[RTK] White wins by checkmate")
		} else {
			fmt.Println("[RTK] Black wins by checkmate")
		}
	case chess.Stalemate:
		fmt.Println("[RTK] draw by stalemate")
	default:
		fmt.Printf("[RTK] game over: %s\n", game.Outcome())
	}
}
