// Command replay-report prints a markdown summary of a replay file. It can
// keep watching the file and re-report on every change, and it can play the
// replay headless to check autoplay timing.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/Speedy-Consoles/ants-insight/config"
	"github.com/Speedy-Consoles/ants-insight/logger"
	"github.com/Speedy-Consoles/ants-insight/playback"
	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/Speedy-Consoles/ants-insight/tick"
	"github.com/sirupsen/logrus"
)

type options struct {
	path  string
	watch bool
	play  time.Duration
	speed float64
	tps   int
}

func main() {
	cfg, cfgPath, cfgErr := config.Resolve()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if cfgErr != nil {
		logger.Log.WithError(cfgErr).Fatal("invalid configuration")
	}
	if cfgPath != "" {
		logger.Log.WithField("path", cfgPath).Debug("configuration loaded")
	}

	watch := flag.Bool("watch", false, "Re-run the report whenever the replay file changes.")
	play := flag.Duration("play", 0, "Play the replay headless for this long and report turn transitions.")
	speed := flag.Float64("speed", cfg.Playback.Speed, "Playback speed for -play.")
	tps := flag.Int("tps", cfg.Playback.TPS, "Ticks per second for -play.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <replay>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *tps <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := options{path: flag.Arg(0), watch: *watch, play: *play, speed: *speed, tps: *tps}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Stdout, opts); err != nil {
		logger.Log.WithError(err).Fatal("replay report failed")
	}
}

func run(ctx context.Context, w io.Writer, opts options) error {
	if err := reportOnce(ctx, w, opts); err != nil {
		if !opts.watch {
			return err
		}
		logger.Log.WithError(err).Error("report failed, waiting for changes")
	}
	if !opts.watch {
		return nil
	}

	watcher, err := replay.NewWatcher(opts.path)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Log.WithField("path", opts.path).Info("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.WithError(err).Warn("watcher error")
		case name, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Log.WithField("path", name).Info("replay changed")
			if err := reportOnce(ctx, w, opts); err != nil {
				logger.Log.WithError(err).Error("report failed, waiting for changes")
			}
		}
	}
}

func reportOnce(ctx context.Context, w io.Writer, opts options) error {
	r, err := replay.Load(opts.path)
	if err != nil {
		return err
	}

	report := NewReport(r)
	if opts.play > 0 {
		report.Playback = playHeadless(ctx, r, opts)
	}

	if err := report.Generate(w); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return nil
}

// playbackSystem advances the player and stops the scheduler once the last
// turn is reached.
type playbackSystem struct {
	Controller tick.Singleton[playback.Controller]

	run     *PlaybackRun
	elapsed time.Duration
}

func (s *playbackSystem) Execute(frame *tick.Frame) {
	controller := s.Controller.Get()
	s.elapsed += frame.DeltaTime

	if controller.Advance(frame.DeltaTime) {
		turn := controller.Player.Turn()
		s.run.Transitions = append(s.run.Transitions, Transition{Turn: turn, At: s.elapsed})
		logger.Log.WithField("turn", turn).Debug("turn advanced")
	}

	if controller.Player.Turn() == controller.Player.Turns()-1 {
		frame.Commands.Stop()
	}
}

func playHeadless(ctx context.Context, r *replay.Replay, opts options) *PlaybackRun {
	player := playback.NewPlayer(r.TurnCount(), true, opts.speed)
	run := &PlaybackRun{
		Speed:     player.Speed(),
		Duration:  opts.play,
		StartTurn: player.Turn(),
	}

	resources := tick.NewResources()
	controller := tick.Insert(resources, *playback.NewController(player))

	scheduler := tick.NewScheduler(resources)
	scheduler.Register(&playbackSystem{run: run})

	// Deferred work runs after every system of the frame has been timed.
	scheduler.RegisterNamed("updateSampler", tick.SystemFunc(func(frame *tick.Frame) {
		frame.Commands.Defer(func() {
			var total time.Duration
			for _, s := range scheduler.Stats().Systems {
				total += s.LastDuration
			}
			run.UpdateTime.Samples = append(run.UpdateTime.Samples, total)
		})
	}))

	ctx, cancel := context.WithTimeout(ctx, opts.play)
	defer cancel()

	logger.Log.WithFields(logrus.Fields{
		"speed":    run.Speed,
		"duration": opts.play,
	}).Info("playing headless")

	start := time.Now()
	scheduler.Run(ctx, time.Second/time.Duration(opts.tps))
	run.TotalTime = time.Since(start)

	stats := scheduler.Stats()
	run.Frames = stats.Frames
	run.Systems = stats.Systems
	run.EndTurn = controller.Player.Turn()
	run.UpdateTime.Finalize()
	return run
}
