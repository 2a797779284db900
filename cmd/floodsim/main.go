//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"floodplan/internal/app"
	"floodplan/internal/config"
	"floodplan/internal/session"
	"floodplan/internal/terrain"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	grid := terrain.Generate(fileCfg.TerrainConfig(), terrain.DefaultConnectivity)
	sess := session.New(grid, cfg.Seed)
	if err := sess.Optimizer().Configure(fileCfg.ColonyParams()); err != nil {
		log.Printf("colony params clamped: %v", err)
	}
	if err := sess.Water().Configure(fileCfg.StormParams()); err != nil {
		log.Printf("storm params clamped: %v", err)
	}

	game := app.New(sess, cfg.Scale, cfg.TPS)
	size := grid.Size()

	ebiten.SetWindowTitle("floodplan")
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
