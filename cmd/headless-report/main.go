package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	turnsPlayed int
	over        bool
	winner      game.Side

	firstMoveTurn    int
	firstCaptureTurn int
	firstRemovalTurn int

	moves       map[string]int // per side
	captures    int
	removals    int
	noBaseTurns int

	blueUnits, redUnits     int
	blueBases, redBases     int
	blueCredits, redCredits int
	moversByLabel           map[string]int

	tail string // session log of the last turns, if requested
}

func main() {
	var runs int
	var turns int
	var seedBase int64
	var seedStep int64
	var width int
	var height int
	var tailTurns int

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&turns, "turns", 60, "maximum turns per session")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&width, "width", 0, "board width (0 = configured)")
	flag.IntVar(&height, "height", 0, "board height (0 = configured)")
	flag.IntVar(&tailTurns, "tail", 0, "print the session log of the last N turns of each run")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		return
	}
	if seedBase == 0 {
		fmt.Println("error: -seed-base must be non-zero (0 seeds from the clock)")
		return
	}

	fmt.Printf("=== Headless Skirmish Report ===\n")
	fmt.Printf("board=%dx%d runs=%d turns=%d seed_base=%d seed_step=%d\n\n", cfg.Width, cfg.Height, runs, turns, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runSession(i+1, seed, turns, tailTurns, cfg)
		if err != nil {
			log.Error().Err(err).Int64("seed", seed).Msg("session failed")
			continue
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runSession plays one AI-vs-AI session and collects its statistics. With
// tailTurns > 0 the log lines of the final tailTurns turns are kept.
func runSession(runIndex int, seed int64, turns, tailTurns int, cfg config.Config) (runStats, error) {
	ts, err := game.NewTestSim(game.WithConfig(func(c *config.Config) {
		*c = cfg
		c.Seed = seed
	}))
	if err != nil {
		return runStats{}, err
	}
	ts.World.SetLogger(log.Logger)
	ts.RunTurns(turns)

	w := ts.World
	entries := ts.SimLog.Entries()
	moves := map[string]int{}
	movers := map[string]int{}
	for _, e := range ts.SimLog.Filter("move", "moved") {
		moves[e.Side]++
		movers[e.Unit]++
	}
	winner, over := w.Winner()
	var tail string
	if tailTurns > 0 {
		tail = ts.SimLog.FormatRange(w.Turn()-tailTurns+1, w.Turn())
	}
	blue, red := w.Roster(game.SideBlue), w.Roster(game.SideRed)

	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		turnsPlayed:      w.Turn(),
		over:             over,
		winner:           winner,
		firstMoveTurn:    firstTurn(entries, "move", "moved", ""),
		firstCaptureTurn: firstTurn(entries, "base", "captured", ""),
		firstRemovalTurn: firstTurn(entries, "unit", "removed", ""),
		moves:            moves,
		captures:         ts.SimLog.CountCategory("base", "captured"),
		removals:         ts.SimLog.CountCategory("unit", "removed"),
		noBaseTurns:      ts.SimLog.CountCategory("ai", "no_bases"),
		blueUnits:        len(blue.Units),
		redUnits:         len(red.Units),
		blueBases:        len(blue.Bases),
		redBases:         len(red.Bases),
		blueCredits:      blue.Credits,
		redCredits:       red.Credits,
		moversByLabel:    movers,
		tail:             tail,
	}, nil
}

func firstTurn(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Turn
		}
	}
	return -1
}

// outcome names the result of a run.
func outcome(rs runStats) string {
	if !rs.over {
		return "undecided"
	}
	return rs.winner.String() + "_wins"
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s turns=%d\n", outcome(rs), rs.turnsPlayed)
	fmt.Printf("phase_markers: first_move=%d first_capture=%d first_removal=%d\n",
		rs.firstMoveTurn, rs.firstCaptureTurn, rs.firstRemovalTurn)
	fmt.Printf("event_totals: blue_moves=%d red_moves=%d captures=%d removals=%d no_base_turns=%d\n",
		rs.moves["blue"], rs.moves["red"], rs.captures, rs.removals, rs.noBaseTurns)
	fmt.Printf("final: blue units=%d bases=%d credits=%d | red units=%d bases=%d credits=%d\n",
		rs.blueUnits, rs.blueBases, rs.blueCredits, rs.redUnits, rs.redBases, rs.redCredits)
	fmt.Printf("movers: %s\n", joinCounts(rs.moversByLabel))
	if rs.tail != "" {
		fmt.Printf("tail:\n%s", rs.tail)
	}
	fmt.Println()
}

// tallyOutcomes counts blue wins, red wins and undecided runs.
func tallyOutcomes(all []runStats) (blueWins, redWins, undecided int) {
	for _, rs := range all {
		switch {
		case !rs.over:
			undecided++
		case rs.winner == game.SideBlue:
			blueWins++
		default:
			redWins++
		}
	}
	return blueWins, redWins, undecided
}

func printAggregate(all []runStats) {
	totalMoves := 0
	totalCaptures := 0
	totalRemovals := 0
	totalNoBase := 0
	totalTurns := 0
	captureTurns := make([]int, 0, len(all))
	endTurns := make([]int, 0, len(all))

	for _, rs := range all {
		totalMoves += rs.moves["blue"] + rs.moves["red"]
		totalCaptures += rs.captures
		totalRemovals += rs.removals
		totalNoBase += rs.noBaseTurns
		totalTurns += rs.turnsPlayed
		if rs.firstCaptureTurn >= 0 {
			captureTurns = append(captureTurns, rs.firstCaptureTurn)
		}
		if rs.over {
			endTurns = append(endTurns, rs.turnsPlayed)
		}
	}
	blueWins, redWins, undecided := tallyOutcomes(all)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d blue_wins=%d red_wins=%d undecided=%d\n", len(all), blueWins, redWins, undecided)
	fmt.Printf("avg_per_run: turns=%.1f moves=%.1f captures=%.1f removals=%.1f no_base_turns=%.1f\n",
		avg(totalTurns, len(all)), avg(totalMoves, len(all)), avg(totalCaptures, len(all)),
		avg(totalRemovals, len(all)), avg(totalNoBase, len(all)))
	fmt.Printf("phase_marker_avg_turns: first_capture=%s game_over=%s\n",
		avgTurnString(captureTurns), avgTurnString(endTurns))
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

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%d", l, m[l])
	}
	return strings.Join(parts, ",")
}
