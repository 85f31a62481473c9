package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	budget := flag.Uint("budget", 1000, "search visit budget per engine move (min 8)")
	second := flag.Bool("second", false, "let the engine play second")
	seed := flag.Uint64("seed", 0, "random seed, 0 for time-based")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	engineSide := game.PlayerA
	if *second {
		engineSide = game.PlayerB
	}

	options := []searcher.Option{}
	if *seed != 0 {
		options = append(options, searcher.WithSeed(*seed))
	}
	engine, err := searcher.NewEngine(engineSide, uint32(*budget), options...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize engine")
	}
	defer engine.Teardown()

	board := game.NewGameState(game.PlayerA)
	col, moved, err := engine.FirstMove()
	if err != nil {
		log.Fatal().Err(err).Msg("engine failed to open")
	}
	if moved {
		if _, err := board.Play(engineSide, col); err != nil {
			log.Fatal().Err(err).Int("column", col).Msg("engine opening move rejected")
		}
		fmt.Printf("Engine opens in column %d\n", col)
	}

	reader := bufio.NewReader(os.Stdin)
	for board.Winner() == game.Ongoing {
		printState(board, engine)

		humanCol := readColumn(reader)
		if _, err := board.Play(engineSide.Opponent(), humanCol); err != nil {
			fmt.Printf("Move rejected: %v\n", err)
			continue
		}
		if board.Winner() != game.Ongoing {
			break
		}

		reply, err := engine.SubmitOpponentMove(humanCol)
		if err != nil {
			log.Fatal().Err(err).Msg("engine failed to reply")
		}
		if _, err := board.Play(engineSide, reply); err != nil {
			log.Fatal().Err(err).Int("column", reply).Msg("engine move rejected")
		}
		fmt.Printf("Engine plays column %d\n", reply)
	}

	fmt.Print("\n", board)
}

func printState(board game.GameState, engine *searcher.Engine) {
	fmt.Print("\n", board)
	snapshot := engine.QueryState()
	if snapshot.Visits > 0 {
		fmt.Printf("=> Confidence: %.3f (%d visits)\n", snapshot.WinRate, snapshot.Visits)
	}
}

func readColumn(reader *bufio.Reader) int {
	for {
		fmt.Print("\n>>> Your move (column 0-6): ")
		var col int
		if _, err := fmt.Fscan(reader, &col); err != nil {
			if err == io.EOF {
				os.Exit(0)
			}
			reader.ReadString('\n') // discard the bad token
			fmt.Println("Please enter a column number.")
			continue
		}
		return col
	}
}
