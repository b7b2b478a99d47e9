package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"

	"ratatosk/pkg/engine"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var clockFlag = flag.Duration("clock", 2*time.Minute, "simulated clock handed to the engine for every position")
var depthFlag = flag.Int("depth", engine.DefaultMaxDepth, "deepening ceiling")

// suite mixes quiet openings, sharp middlegames and near-mate endings.
var suite = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"5B2/PP1k2P1/p3pr1p/7p/1p2p3/8/3K2Rn/4r3 w - - 0 1",
	"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
}

type outcome struct {
	move  string
	score int
	depth int
	nodes uint
	took  time.Duration
}

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	fmt.Printf("searching %d positions, clock %v, ceiling %d\n", len(suite), *clockFlag, *depthFlag)
	results := make([]outcome, len(suite))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	start := time.Now()
	for i, fen := range suite {
		i, fen := i, fen
		g.Go(func() error {
			f, err := chess.FEN(fen)
			if err != nil {
				return fmt.Errorf("position %d: %w", i+1, err)
			}
			game := chess.NewGame(f)
			eng := engine.NewEngine()
			eng.MaxDepth = *depthFlag
			searchStart := time.Now()
			res := eng.DecideMove(game.Position(), engine.TimeControl{White: *clockFlag, Black: *clockFlag})
			if res.Move == nil {
				return fmt.Errorf("position %d: no legal moves", i+1)
			}
			results[i] = outcome{
				move:  res.Move.String(),
				score: res.Info.Score,
				depth: res.Info.Depth,
				nodes: eng.Nodes + eng.QNodes,
				took:  time.Since(searchStart),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	var nodes uint
	for i, r := range results {
		fmt.Printf("%2d. %-7s depth %-2d score %-7d %9d nodes  %v\n",
			i+1, r.move, r.depth, r.score, r.nodes, r.took.Round(time.Millisecond))
		nodes += r.nodes
	}
	fmt.Printf("total %d nodes in %v (%.0f kN/s)\n",
		nodes, elapsed.Round(time.Millisecond), float64(nodes)/elapsed.Seconds()/1000)
}
