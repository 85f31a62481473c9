package experiments

import (
	"errors"
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const NumGames = 20 // Per match up

// Budgets under test; the first entry is the baseline opponent.
var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Budget: 64, Seed: 1},
	{ID: 2, Budget: 256, Seed: 2},
	{ID: 3, Budget: 1024, Seed: 3},
	{ID: 4, Budget: 4096, Seed: 4},
}

// RunBudgetExperiment plays each configured budget against the baseline and
// records per-game and per-move metrics as CSV. Games are independent, so
// they run in parallel; each individual search stays single-threaded.
func RunBudgetExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Budget: 64, Seed: 99}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment("budget_to_strength", append(budgetConfigs, baseline), matchUps)
}

type gameResult struct {
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) error {
	writer, err := metrics.NewWriter(name)
	if err != nil {
		return err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for _, matchUp := range matchUps {
		log.Info().Int("agent1", matchUp[0].ID).Int("agent2", matchUp[1].ID).
			Msg("running match up")

		results := make([]gameResult, NumGames)
		var group errgroup.Group
		for i := range results {
			i := i
			group.Go(func() error {
				result, err := playGame(matchUp[0], matchUp[1], uint64(i))
				if err != nil {
					return err
				}
				results[i] = result
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return fmt.Errorf("match up %d vs %d: %w", matchUp[0].ID, matchUp[1].ID, err)
		}

		for _, result := range results {
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     matchUp[0].ID,
				Agent2:     matchUp[1].ID,
				GameMetric: result.game,
			})
			for _, move := range result.moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: move,
				})
			}
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	return writer.WriteMoveRecords(moveRecords)
}

// playGame runs one engine-vs-engine game, agent1 as player A and agent2 as
// player B, and collects both sides' search metrics.
func playGame(agent1, agent2 metrics.AgentConfig, offset uint64) (gameResult, error) {
	collectorA := metrics.NewCollector()
	collectorB := metrics.NewCollector()

	engineA, err := searcher.NewEngine(game.PlayerA, agent1.Budget,
		searcher.WithSeed(agent1.Seed+offset), searcher.WithMetrics(collectorA))
	if err != nil {
		return gameResult{}, err
	}
	defer engineA.Teardown()

	engineB, err := searcher.NewEngine(game.PlayerB, agent2.Budget,
		searcher.WithSeed(agent2.Seed+offset), searcher.WithMetrics(collectorB))
	if err != nil {
		return gameResult{}, err
	}
	defer engineB.Teardown()

	start := time.Now()
	var moves []metrics.MoveMetric
	step := 1

	col, _, err := engineA.FirstMove()
	if err != nil {
		return gameResult{}, err
	}
	moves = append(moves, metrics.MoveMetric{
		Step: step, Player: game.PlayerA.String(), SearchMetric: collectorA.Complete(),
	})

	responder, collector := engineB, collectorB
	var outcome game.Outcome
	for {
		step++
		reply, err := responder.SubmitOpponentMove(col)
		if errors.Is(err, game.ErrGameFinished) {
			outcome = responder.QueryState().Outcome
			break
		}
		if err != nil {
			return gameResult{}, err
		}
		moves = append(moves, metrics.MoveMetric{
			Step: step, Player: responder.Side().String(), SearchMetric: collector.Complete(),
		})
		col = reply
		if responder == engineA {
			responder, collector = engineB, collectorB
		} else {
			responder, collector = engineA, collectorA
		}
	}

	end := time.Now()
	return gameResult{
		game: metrics.GameMetric{
			Winner:     winnerName(outcome),
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start),
			TotalMoves: step - 1,
		},
		moves: moves,
	}, nil
}

func winnerName(outcome game.Outcome) string {
	switch outcome {
	case game.WonByA:
		return game.PlayerA.String()
	case game.WonByB:
		return game.PlayerB.String()
	default:
		return "draw"
	}
}
