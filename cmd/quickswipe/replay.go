package main

import (
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/quickswipe"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		width, height float64
		maxFrames     int
	)
	cmd := &cobra.Command{
		Use:   "replay <script.json>",
		Short: "Replay a recorded gesture script headlessly",
		Long: `Replay feeds a JSON gesture script through the full pipeline against a
simulated system and prints where each interaction settled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := quickswipe.LoadGestureScript(data)
			if err != nil {
				return err
			}
			results, err := replay(a.cfg, a.logger, runner, width, height, maxFrames)
			for i, t := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "interaction %d: %s\n", i+1, t)
			}
			return err
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1080, "screen width in pixels")
	cmd.Flags().Float64Var(&height, "height", 2400, "screen height in pixels")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 600, "frames to wait for the pipeline to settle after the script ends")
	return cmd
}

// replay runs the script frame by frame on a simulated clock and returns the
// end target of every finished interaction.
func replay(cfg quickswipe.Config, logger zerolog.Logger, runner *quickswipe.ScriptRunner, width, height float64, maxFrames int) ([]quickswipe.EndTarget, error) {
	p, err := newPipeline(cfg, logger, width, height)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	clock := time.Unix(0, 0)
	p.SetClock(func() time.Time { return clock })

	frame := quickswipe.DefaultFrameInterval
	dt := float32(frame.Seconds())
	var now time.Duration
	step := func() {
		p.Tick(dt, true)
		now += frame
		clock = clock.Add(frame)
	}

	for ev := runner.Next(); ev != nil; ev = runner.Next() {
		for now < ev.Time {
			step()
		}
		logger.Trace().Stringer("action", ev.Action).Dur("t", ev.Time).Int("pointers", ev.PointerCount()).Msg("replay event")
		p.Receive(ev)
	}

	for range maxFrames {
		step()
		if p.Idle() {
			return p.Results(), nil
		}
	}
	return p.Results(), fmt.Errorf("pipeline did not settle within %d frames", maxFrames)
}
