package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mozilla/datawar/internal/game"
	gamelog "github.com/mozilla/datawar/internal/log"
	"github.com/mozilla/datawar/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "play":
		runPlay(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  datawar play [--seed N] [--turns N] [--cards FILE] [--player-order STRATEGY] [--cpu-order STRATEGY]")
	fmt.Println("  datawar serve [--port P] [--cards FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Simulate a full game in the terminal with an event log")
	fmt.Println("  serve   Start the browser UI server")
	fmt.Println()
	fmt.Println("Order strategies: random, high-value-first, low-value-first,")
	fmt.Println("  special-first, tracker-first, launch-stack-first")
}

func validStrategy(s game.OrderStrategy) bool {
	switch s {
	case game.OrderRandom, game.OrderHighValueFirst, game.OrderLowValueFirst,
		game.OrderSpecialFirst, game.OrderTrackerFirst, game.OrderLaunchStkFirst:
		return true
	}
	return false
}

func loadConfig(path string) (*game.Config, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}
	return game.LoadConfig(path)
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "RNG seed, 0 for a random game")
	turns := fs.Int("turns", 1000, "maximum number of hands to play")
	cards := fs.String("cards", "", "path to a composition YAML file (default: stock deck)")
	playerOrder := fs.String("player-order", "random", "player deck ordering strategy")
	cpuOrder := fs.String("cpu-order", "random", "cpu deck ordering strategy")
	fs.Parse(args)

	cfg, err := loadConfig(*cards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, s := range []string{*playerOrder, *cpuOrder} {
		if !validStrategy(game.OrderStrategy(s)) {
			fmt.Fprintf(os.Stderr, "Error: unknown order strategy %q\n", s)
			os.Exit(1)
		}
	}

	logger := gamelog.NewTextLogger(os.Stdout)
	g, err := game.NewGame(cfg, game.Options{
		Seed:           *seed,
		PlayerStrategy: game.OrderStrategy(*playerOrder),
		CPUStrategy:    game.OrderStrategy(*cpuOrder),
		Logger:         logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := game.NewMachine(g, game.MachineOptions{SkipGuide: true})
	played := m.Run(*turns)

	fmt.Println()
	if g.HasWinner() {
		fmt.Printf("%s wins by %s after %d hand(s)\n", g.Winner(), g.WinCondition(), played)
	} else {
		fmt.Printf("no winner after %d hand(s)\n", played)
	}
	snap := g.Snapshot()
	fmt.Printf("final: player %d cards / %d stacks, cpu %d cards / %d stacks\n",
		snap.Player.DeckCount, snap.Player.LaunchStacks,
		snap.CPU.DeckCount, snap.CPU.LaunchStacks)
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "HTTP port to listen on")
	cards := fs.String("cards", "", "path to a composition YAML file (default: stock deck)")
	fs.Parse(args)

	cfg, err := loadConfig(*cards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(cfg)
	addr := fmt.Sprintf(":%d", *port)
	log.Printf("datawar web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
