package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/cybergrid/internal/autopilot"
	"github.com/vovakirdan/cybergrid/internal/config"
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/level"
	"github.com/vovakirdan/cybergrid/internal/storage"
)

var (
	flagRuns       int
	flagSimLevel   int
	flagMaxMinutes int
	flagParallel   int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless",
	Long: `Play N runs with the built-in autopilot and print a summary.

A run starts at --level and continues through the level table until the
runner is caught, every level is won or the time cap is reached.
With --seed set, run i uses seed+i and the output is reproducible.

Examples:
  cybergrid sim
  cybergrid sim --runs 50 --parallel 8
  cybergrid sim --level 4 --seed 42`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs")
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level each run starts at")
	simCmd.Flags().IntVar(&flagMaxMinutes, "max-minutes", 10, "Simulated time cap per run, in minutes")
	simCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Runs simulated at once")
}

// simRun is the outcome of one autopilot run.
type simRun struct {
	seed    int64
	runID   string
	results []game.Result
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := mustLogger(false)
	defer closeLog()

	if flagRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --runs must be positive")
		os.Exit(1)
	}

	store, err := storage.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessionID := uuid.NewString()
	runs, err := simulate(cfg, store, sessionID, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		closeLog()
		os.Exit(1)
	}

	printRuns(runs)
	if err := printSummary(store, sessionID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		closeLog()
		os.Exit(1)
	}
}

// simulate plays every run and records each finished level in the ledger.
func simulate(cfg config.Config, store *storage.Store, sessionID string, logger *log.Logger) ([]simRun, error) {
	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = 60
	}
	maxFrames := flagMaxMinutes * 60 * tickRate
	startLevel := level.Clamp(flagSimLevel)

	runs := make([]simRun, flagRuns)
	var g errgroup.Group
	g.SetLimit(max(1, flagParallel))

	for i := range runs {
		g.Go(func() error {
			seed := baseSeed + int64(i)
			ledger := storage.NewLedger(store, sessionID)
			runLog := logger.With("run", i+1, "seed", seed)

			sess := game.New(cfg.Timing, game.WithLogger(runLog))
			sess.Reset(core.RuntimeConfig{TickRate: tickRate, Seed: seed})

			pilot := autopilot.New(startLevel, cfg.Timing.RunnerRepeat())
			results, err := autopilot.Play(sess, pilot, maxFrames)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			for _, res := range results {
				if err := ledger.Record(res); err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
			}
			runLog.Debug("run finished", "levels", len(results))
			runs[i] = simRun{seed: seed, runID: ledger.RunID(), results: results}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func printRuns(runs []simRun) {
	fmt.Printf("  %-4s  %-20s  %-6s  %-9s  %s\n", "Run", "Seed", "Levels", "Reached", "Ended")
	fmt.Printf("  %-4s  %-20s  %-6s  %-9s  %s\n", "---", "----", "------", "-------", "-----")

	for i, r := range runs {
		reached, ended := 0, "time cap"
		if n := len(r.results); n > 0 {
			last := r.results[n-1]
			reached = last.Level
			switch {
			case last.Outcome == core.StateGameOver:
				ended = "caught"
			case !level.HasNext(last.Level):
				ended = "all cleared"
			}
		}
		fmt.Printf("  %-4d  %-20d  %-6d  %-9d  %s\n", i+1, r.seed, len(r.results), reached, ended)
	}
	fmt.Println()
}

func printSummary(store *storage.Store, sessionID string) error {
	sum, err := store.Summary(sessionID)
	if err != nil {
		return err
	}
	breakdown, err := store.LevelBreakdown(sessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Levels played: %d  won: %d  lost: %d  best: %d\n",
		sum.Levels, sum.Victories, sum.GameOvers, sum.BestLevel)
	fmt.Printf("Nodes collected: %d  drones destroyed: %d  simulated time: %v\n",
		sum.Collected, sum.DronesDestroyed, sum.PlayTime.Round(time.Second))
	fmt.Println()

	fmt.Printf("  %-5s  %-8s  %-4s  %s\n", "Level", "Attempts", "Wins", "Win rate")
	for _, ls := range breakdown {
		rate := 0.0
		if ls.Attempts > 0 {
			rate = float64(ls.Victories) / float64(ls.Attempts) * 100
		}
		fmt.Printf("  %-5d  %-8d  %-4d  %5.1f%%\n", ls.Level, ls.Attempts, ls.Victories, rate)
	}
	return nil
}
