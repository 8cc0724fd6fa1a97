package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/Garsondee/Kissing-Discs/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string

	turns    int
	attempts int
	captures [2]int
	stalled  bool
	message  string

	firstCaptureTurn int

	placed       int
	rejected     int
	infeasible   int
	passes       int
	boardSize    int
	maxContacts  int
	negativeLeft int
}

func main() {
	var runs int
	var attempts int
	var seedBase int64
	var seedStep int64
	var arena float64
	var discs int

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&attempts, "attempts", 200, "random drop attempts per turn before a match counts as stalled")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&arena, "arena", game.DefaultArenaRadius, "arena radius")
	flag.IntVar(&discs, "discs", game.DefaultDiscsPerPile, "discs per player")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if attempts <= 0 {
		fmt.Println("error: -attempts must be > 0")
		return
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d attempts=%d arena=%.0f discs=%d seed_base=%d seed_step=%d\n\n", runs, attempts, arena, discs, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runRandomMatch(i+1, seed, attempts, arena, discs)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runRandomMatch(runIndex int, seed int64, attempts int, arena float64, discs int) (runStats, error) {
	sc, err := game.NewScenario(
		game.WithSeed(seed),
		game.WithArenaRadius(arena),
		game.WithDiscsPerPile(discs),
	)
	if err != nil {
		return runStats{}, err
	}
	res := sc.PlayRandom(attempts)
	if err := sc.Game.CheckInvariants(); err != nil {
		return runStats{}, fmt.Errorf("run %d (seed=%d): %w", runIndex, seed, err)
	}

	ml := sc.Game.Log()
	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		matchID:          sc.Game.MatchID().String(),
		turns:            res.Turns,
		attempts:         res.Attempts,
		captures:         res.Captures,
		stalled:          res.Stalled,
		message:          res.Message,
		firstCaptureTurn: firstTurn(ml.Entries(), game.CatBoard, "capture"),
		placed:           ml.CountCategory(game.CatBoard, "placed"),
		rejected:         ml.CountCategory(game.CatDrag, "rejected"),
		infeasible:       ml.CountCategory(game.CatGeometry, "infeasible_tangent"),
		passes:           ml.CountCategory(game.CatTurn, "pass"),
	}
	for _, d := range sc.Game.Board() {
		rs.boardSize++
		if len(d.Contacts) > rs.maxContacts {
			rs.maxContacts = len(d.Contacts)
		}
		if d.Score < 0 {
			rs.negativeLeft++
		}
	}
	return rs, nil
}

func firstTurn(entries []game.LogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Turn
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d match=%s) ---\n", rs.runIndex, rs.seed, rs.matchID)
	fmt.Printf("result: %q turns=%d stalled=%t\n", rs.message, rs.turns, rs.stalled)
	fmt.Printf("drops: placed=%d rejected=%d attempts=%d infeasible_tangent=%d passes=%d\n",
		rs.placed, rs.rejected, rs.attempts, rs.infeasible, rs.passes)
	fmt.Printf("captures: white=%d black=%d first_capture_turn=%d\n",
		rs.captures[game.PlayerA], rs.captures[game.PlayerB], rs.firstCaptureTurn)
	fmt.Printf("final_board: discs=%d max_contacts=%d negative=%d\n", rs.boardSize, rs.maxContacts, rs.negativeLeft)
	fmt.Println()
}

// outcome classifies a finished run.
func outcome(rs runStats) string {
	switch {
	case rs.stalled:
		return "stalled"
	case rs.captures[game.PlayerA] > rs.captures[game.PlayerB]:
		return "white"
	case rs.captures[game.PlayerB] > rs.captures[game.PlayerA]:
		return "black"
	}
	return "draw"
}

func printAggregate(all []runStats) {
	totalTurns := 0
	totalAttempts := 0
	totalRejected := 0
	totalInfeasible := 0
	totalPasses := 0
	totalCaptures := [2]int{}
	captureTurns := make([]int, 0, len(all))
	outcomes := map[string]int{}

	for _, rs := range all {
		totalTurns += rs.turns
		totalAttempts += rs.attempts
		totalRejected += rs.rejected
		totalInfeasible += rs.infeasible
		totalPasses += rs.passes
		totalCaptures[game.PlayerA] += rs.captures[game.PlayerA]
		totalCaptures[game.PlayerB] += rs.captures[game.PlayerB]
		if rs.firstCaptureTurn >= 0 {
			captureTurns = append(captureTurns, rs.firstCaptureTurn)
		}
		outcomes[outcome(rs)]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: turns=%.1f attempts=%.1f rejected=%.1f infeasible_tangent=%.1f passes=%.1f\n",
		avg(totalTurns, len(all)), avg(totalAttempts, len(all)), avg(totalRejected, len(all)),
		avg(totalInfeasible, len(all)), avg(totalPasses, len(all)))
	fmt.Printf("avg_captures_per_run: white=%.2f black=%.2f\n",
		avg(totalCaptures[game.PlayerA], len(all)), avg(totalCaptures[game.PlayerB], len(all)))
	fmt.Printf("first_capture_avg_turn=%s (runs with a capture: %d)\n", avgTurnString(captureTurns), len(captureTurns))
	fmt.Printf("outcomes: %s\n", formatOutcomes(outcomes))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTurnString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatOutcomes(counts map[string]int) string {
	parts := make([]string, 0, 4)
	for _, k := range []string{"white", "black", "draw", "stalled"} {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
