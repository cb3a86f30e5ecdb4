package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/level"
	"github.com/vovakirdan/cybergrid/internal/platform/tui"
	"github.com/vovakirdan/cybergrid/internal/sound"
	"github.com/vovakirdan/cybergrid/internal/storage"
)

var (
	flagLevel int
	flagMute  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start CyberGrid Runner in this terminal.

Controls:
  Arrows/WASD  - Move (hold to keep moving)
  Space        - Fire in the facing direction (hold to keep firing)
  Enter        - Start level / next level
  1-5          - Select level on the menu
  P            - Pause/resume
  Esc/B        - Back to menu from pause
  R            - Back to menu after a level ends
  M            - Mute/unmute
  Q/Ctrl+C     - Quit

Examples:
  cybergrid play
  cybergrid play --level 3
  cybergrid play --mute --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, fmt.Sprintf("Level preselected on the menu (1-%d)", level.Max))
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := mustLogger(true)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var sink sound.Sink = sound.Silent{}
	var muter tui.Muter
	if cfg.Audio.Enabled && !flagMute {
		sp := sound.NewSpeaker(sound.Options{SampleRate: cfg.Audio.SampleRate, Volume: cfg.Audio.Volume})
		if err := sp.Init(); err != nil {
			logger.Warn("audio unavailable, playing silent", "error", err)
		} else {
			defer sp.Close()
			sink = sp
			muter = sp
		}
	}

	// The ledger lives in memory for this process only
	var ledger *storage.Ledger
	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
	} else {
		defer store.Close()
		ledger = storage.NewLedger(store, "local")
	}

	sess := game.New(cfg.Timing, game.WithSink(sink), game.WithLogger(logger))

	runErr := tui.Run(sess, rc, tui.Options{
		Ledger:     ledger,
		Logger:     logger,
		Hold:       cfg.Input.Hold(),
		Muter:      muter,
		StartLevel: level.Clamp(flagLevel),
	})
	if runErr != nil {
		logger.Error("game ended with error", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
