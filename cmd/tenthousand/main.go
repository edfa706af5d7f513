package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pterm/pterm"

	"tenthousand/internal/app"
	"tenthousand/internal/bot"
	"tenthousand/internal/dice"
	"tenthousand/internal/domain"
)

type options struct {
	Seed     int64  `env:"TENK_SEED"`
	Humans   int    `env:"TENK_HUMANS" envDefault:"1"`
	Bots     int    `env:"TENK_BOTS" envDefault:"2"`
	Name     string `env:"TENK_NAME"`
	Strategy string `env:"TENK_STRATEGY" envDefault:"balanced"`
}

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	var opts options
	if err := env.Parse(&opts); err != nil {
		logger.Error("bad environment", "error", err)
		os.Exit(1)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = dice.MustSeed()
	}

	renderBanner()
	logger.Info("table opening", "seed", seed, "humans", opts.Humans, "bots", opts.Bots)

	configs, agents, err := buildTable(opts, seed)
	if err != nil {
		logger.Error("could not seat the table", "error", err)
		os.Exit(1)
	}

	svc := app.NewService(dice.NewRoller(seed))
	game, events, err := svc.StartGame(configs)
	if err != nil {
		logger.Error("could not start the game", "error", err)
		os.Exit(1)
	}
	printEvents(game, events)

	for !game.GameOver {
		pterm.Println()
		renderScoreboard(game)
		renderTurnPanel(game)

		current := domain.CurrentPlayer(game)
		if current.AI {
			game = botStep(svc, game, agents[current.ID], logger)
			time.Sleep(400 * time.Millisecond)
		} else {
			game = humanStep(svc, game, logger)
		}
	}

	pterm.Println()
	renderScoreboard(game)
	winner, _ := domain.Winner(game)
	pterm.Success.Printfln("%s wins with %d points!", winner.Name, winner.Score)
}

// buildTable seats the configured humans and bots and builds the bot agents.
func buildTable(opts options, seed int64) ([]domain.PlayerConfig, map[string]*bot.Agent, error) {
	var configs []domain.PlayerConfig

	for i := 0; i < opts.Humans; i++ {
		name := opts.Name
		if name == "" || i > 0 {
			prompt := fmt.Sprintf("Player %d name", i+1)
			name, _ = pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).
				WithDefaultValue(fmt.Sprintf("Player %d", i+1)).Show()
			name = strings.TrimSpace(name)
		}
		configs = append(configs, domain.PlayerConfig{
			ID:   fmt.Sprintf("human-%d", i+1),
			Name: name,
		})
	}

	agents := make(map[string]*bot.Agent)
	rng := rand.New(rand.NewSource(seed + 1))
	for i := 0; i < opts.Bots; i++ {
		id := fmt.Sprintf("bot-%d", i+1)
		name := fmt.Sprintf("Bot %d", i+1)
		brain, err := bot.NewBrain(opts.Strategy, rng)
		if err != nil {
			return nil, nil, err
		}
		configs = append(configs, domain.PlayerConfig{
			ID:       id,
			Name:     name,
			AI:       true,
			Strategy: opts.Strategy,
		})
		agents[id] = &bot.Agent{ID: id, Name: name, Strategy: brain}
	}

	return configs, agents, nil
}

func botStep(svc *app.Service, game domain.GameState, agent *bot.Agent, logger *slog.Logger) domain.GameState {
	move, ok := agent.Decide(game)
	if !ok {
		return game
	}

	var (
		next   domain.GameState
		events []app.Event
		err    error
	)
	switch move.Action {
	case domain.ActionRoll:
		next, events, err = svc.Roll(game, agent.ID)
	case domain.ActionKeep:
		next, events, err = svc.Keep(game, agent.ID, move.Keep)
	case domain.ActionBank:
		next, events, err = svc.Bank(game, agent.ID)
	default:
		logger.Error("bot produced an unexpected move", "bot", agent.Name, "move", string(move.Action))
		return game
	}
	if err != nil {
		logger.Error("bot move failed", "bot", agent.Name, "move", string(move.Action), "error", err)
		return game
	}
	printEvents(next, events)
	return next
}

func humanStep(svc *app.Service, game domain.GameState, logger *slog.Logger) domain.GameState {
	current := domain.CurrentPlayer(game)

	var (
		next   domain.GameState
		events []app.Event
		err    error
	)
	switch game.Turn.Phase {
	case domain.TurnStealRequired:
		prompt := fmt.Sprintf("Steal attempt: roll %d dice for the %d point pot?",
			game.Turn.DiceRemaining, game.Turn.CarryoverPoints)
		steal, _ := pterm.DefaultInteractiveConfirm.WithDefaultValue(true).Show(prompt)
		if steal {
			next, events, err = svc.Roll(game, current.ID)
		} else {
			next, events, err = svc.DeclineCarryover(game, current.ID)
		}

	case domain.TurnRolling:
		next, events, err = svc.Roll(game, current.ID)

	case domain.TurnKeeping:
		keep := promptKeep(game.Turn.CurrentRoll)
		next, events, err = svc.Keep(game, current.ID, keep)

	case domain.TurnDeciding:
		if !domain.CanBank(game.Turn, current.OnBoard) {
			pterm.Info.Printfln("You need %d self-earned points to get on the board. Rolling on.",
				domain.EntryThreshold)
			next, events, err = svc.Roll(game, current.ID)
			break
		}
		prompt := fmt.Sprintf("Roll again with %d dice? (No banks %d points)",
			game.Turn.DiceRemaining, game.Turn.TurnScore)
		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultValue(true).Show(prompt)
		if again {
			next, events, err = svc.Roll(game, current.ID)
		} else {
			next, events, err = svc.Bank(game, current.ID)
		}

	default:
		logger.Error("unexpected turn phase", "phase", string(game.Turn.Phase))
		return game
	}

	if err != nil {
		pterm.Warning.Printfln("%v", err)
		return game
	}
	printEvents(next, events)
	return next
}

// promptKeep asks the player which dice to keep, retrying until the
// selection is legal.
func promptKeep(roll domain.Dice) domain.Dice {
	selectable := domain.SelectableIndices(roll, nil)
	labels := make([]string, len(selectable))
	for i, idx := range selectable {
		labels[i] = fmt.Sprintf("die %d: [%d]", idx+1, roll[idx])
	}

	for {
		picked, _ := pterm.DefaultInteractiveMultiselect.WithOptions(labels).
			WithDefaultText("Pick the dice to keep").Show()

		keep := make(domain.Dice, 0, len(picked))
		for _, label := range picked {
			for i, candidate := range labels {
				if candidate == label {
					keep = append(keep, roll[selectable[i]])
					break
				}
			}
		}

		if v := domain.ValidateKeep(roll, keep); !v.Valid {
			pterm.Warning.Printfln("Invalid keep: %s", v.Reason)
			continue
		}
		return keep
	}
}

func printEvents(game domain.GameState, events []app.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case app.EventGameStarted:
			p := ev.Payload.(app.GameStartedPayload)
			pterm.Info.Printfln("Game on! %s rolls first.", playerName(game, p.FirstTurnUserID))

		case app.EventDiceRolled:
			p := ev.Payload.(app.DiceRolledPayload)
			pterm.Info.Printfln("%s rolled %s", playerName(game, p.UserID), renderDice(p.Roll))

		case app.EventDiceKept:
			p := ev.Payload.(app.DiceKeptPayload)
			pterm.Info.Printfln("%s kept %s for %d (turn total %d)",
				playerName(game, p.UserID), renderDice(p.Kept), p.KeepScore, p.TurnScore)
			renderBreakdown(domain.ScoreSelection(p.Kept))
			if p.HotDice {
				pterm.Success.Printfln("Hot dice! Fresh pool of %d.", domain.DicePerTurn)
			}

		case app.EventBusted:
			p := ev.Payload.(app.BustedPayload)
			pterm.Error.Printfln("%s busted and forfeits %d points.",
				playerName(game, p.UserID), p.ForfeitPoints)

		case app.EventBanked:
			p := ev.Payload.(app.BankedPayload)
			pterm.Success.Printfln("%s banks %d (total %d).",
				playerName(game, p.UserID), p.TurnScore, p.Total)

		case app.EventCarryoverDeclined:
			p := ev.Payload.(app.CarryoverDeclinedPayload)
			pterm.Info.Printfln("%s declines the pot and starts fresh.", playerName(game, p.UserID))

		case app.EventCarryoverOffered:
			p := ev.Payload.(app.CarryoverOfferedPayload)
			pterm.Info.Printfln("%s may steal %d points by rolling %d dice.",
				playerName(game, p.ToUserID), p.Points, p.DiceCount)

		case app.EventGameEnded:
			// The winner banner renders after the loop.
		}
	}
}

func playerName(game domain.GameState, userID string) string {
	for _, p := range game.Players {
		if p.ID == userID {
			return p.Name
		}
	}
	return userID
}
