package main

import (
	"log"
	"os"

	"ratatosk/pkg/config"
	"ratatosk/pkg/engine"
	"ratatosk/pkg/uci"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	eng := engine.NewEngine()
	eng.MaxDepth = cfg.MaxDepth
	eng.QuiescenceDepth = cfg.QuiescenceDepth
	if err := uci.New(eng, os.Stdout).Run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}
