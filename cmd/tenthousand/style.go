package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"tenthousand/internal/domain"
)

func renderBanner() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Ten ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Thousand", pterm.FgDarkGray.ToStyle()),
	).Render()
}

func renderDie(d domain.Die) string {
	face := fmt.Sprintf("[%d]", d)
	if d == 1 || d == 5 {
		return pterm.LightGreen(face)
	}
	return face
}

func renderDice(dice domain.Dice) string {
	out := ""
	for i, d := range dice {
		if i > 0 {
			out += " "
		}
		out += renderDie(d)
	}
	return out
}

func renderScoreboard(game domain.GameState) {
	rows := pterm.TableData{{"Seat", "Player", "Score", "On Board"}}
	for i, p := range game.Players {
		name := p.Name
		if i == game.CurrentPlayerIndex && !game.GameOver {
			name = pterm.LightCyan("> " + name)
		}
		onBoard := "no"
		if p.OnBoard {
			onBoard = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			name,
			fmt.Sprintf("%d", p.Score),
			onBoard,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	if game.FinalRound && !game.GameOver {
		pterm.Warning.Printfln("Final round! Score to beat: %d (%s)",
			game.ScoreToBeat, game.Players[game.ScoreToBeatPlayerIndex].Name)
	}
}

func renderTurnPanel(game domain.GameState) {
	turn := game.Turn
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitle(
		pterm.LightYellow(domain.CurrentPlayer(game).Name + "'s turn"))

	body := fmt.Sprintf("Turn score: %d\nDice in pool: %d", turn.TurnScore, turn.DiceRemaining)
	if turn.HasCarryover && !turn.CarryoverClaimed {
		body += fmt.Sprintf("\nCarryover at stake: %d", turn.CarryoverPoints)
	}
	if len(turn.KeptDice) > 0 {
		body += "\nKept so far: " + renderDice(turn.KeptDice)
	}
	pterm.Println(pbox.Sprint(body))
}

func renderBreakdown(result domain.ScoreResult) {
	for _, line := range result.Breakdown {
		pterm.Info.Printfln("  %s: %d", line.Description, line.Points)
	}
}
