// Command ramune-stress renders many bouncing boxes headless as fast as it
// can and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/internal/demo"
	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/platform/headless"
	"github.com/plus3/ramune/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	boxes := flag.Int("boxes", 10000, "The number of bouncing boxes to draw.")
	width := flag.Int("width", 1280, "Screen width.")
	height := flag.Int("height", 720, "Screen height.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level, overridden by "+logging.LevelEnv+".")
	flag.Parse()

	log, err := logging.New("ramune-stress", *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ramune-stress:", err)
		os.Exit(1)
	}
	defer log.Sync()

	report := &Report{
		Duration:       *duration,
		Boxes:          *boxes,
		Width:          *width,
		Height:         *height,
		GCPauseMetrics: *gcPauseMetrics,
	}

	var frameStart time.Time
	p := headless.New(headless.Config{
		AfterFrame: func(uint64, lemon.Device) error {
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			return nil
		},
	})
	game, ctx, err := ramune.NewGameBuilder().
		Size(*width, *height).
		Platform(p).
		Logger(log).
		Build()
	if err != nil {
		log.Fatal("build failed", zap.Error(err))
	}

	sc := scene.New(ctx)
	sc.Background = ramune.CornflowerBlue
	demo.Register(sc.Storage())
	demo.SpawnBoxes(sc.Storage(), *boxes, *width, *height, rand.New(rand.NewPCG(1, 1)))
	sc.Register(demo.NewBouncer(*width, *height))

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running", zap.Duration("duration", *duration), zap.Int("boxes", *boxes))
	run, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	err = game.Run(run, func(e ramune.Event) {
		switch e := e.(type) {
		case ramune.Update:
			frameStart = time.Now()
		case ramune.Draw:
			report.add(e.Graphics.Stats())
		}
		sc.Handle(e)
	})
	if err != nil {
		log.Fatal("run failed", zap.Error(err))
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = int64(ctx.Tick())
	report.FrameTime.Finalize()
	stats := sc.Stats()
	report.Systems = stats.Systems
	report.Entities = stats.Entities
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("finished", zap.Int64("frames", report.TotalFrames))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
