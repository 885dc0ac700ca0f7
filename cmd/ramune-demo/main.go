// Command ramune-demo opens a window with the hello scene and a few
// bouncing boxes. With -backend headless and -screenshot it renders off
// screen and saves the last frame as a PNG. With -debug on the ebiten
// backend a Dear ImGui stats window is drawn over the game.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/internal/demo"
	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/platform/ebitenwin"
	"github.com/plus3/ramune/platform/headless"
	"github.com/plus3/ramune/scene"
	"github.com/plus3/ramune/scene/debugui"
	debugui_ebiten "github.com/plus3/ramune/scene/debugui/ebiten"

	_ "github.com/plus3/ramune/platform/glfwgl"
)

func init() {
	// Window systems expect to be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ramune-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file.")
	backend := flag.String("backend", "", "Platform to run on: ebiten, gl or headless.")
	width := flag.Int("width", 0, "Window width.")
	height := flag.Int("height", 0, "Window height.")
	frames := flag.Uint64("frames", 0, "Stop a headless run after this many frames.")
	boxes := flag.Int("boxes", 64, "Number of bouncing boxes.")
	seed := flag.Uint64("seed", 1, "Random seed for the boxes.")
	screenshot := flag.String("screenshot", "", "Save the last headless frame to this PNG file.")
	debug := flag.Bool("debug", false, "Show the debug overlay (ebiten backend only).")
	logLevel := flag.String("log-level", "", "Log level, overrides the config file and "+logging.LevelEnv+".")
	flag.Parse()

	cfg := ramune.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = ramune.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "frames":
			cfg.Headless.Frames = *frames
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if *screenshot != "" {
		cfg.Backend = headless.Name
		if cfg.Headless.Frames == 0 {
			cfg.Headless.Frames = 1
		}
	}

	logger, err := logging.New("ramune-demo", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	b := ramune.NewGameBuilder().Config(cfg).Logger(logger)
	var last *image.RGBA
	if *screenshot != "" {
		b.Platform(headless.New(headless.Config{
			Hz:     cfg.Headless.Hz,
			Frames: cfg.Headless.Frames,
			AfterFrame: func(frame uint64, dev lemon.Device) error {
				if frame < cfg.Headless.Frames {
					return nil
				}
				var err error
				last, err = dev.Readback(lemon.Screen)
				return err
			},
		}))
	}

	overlay := *debug && cfg.Backend == ebitenwin.Name && *screenshot == ""
	if overlay {
		p := ebitenwin.New()
		p.SetOverlay(debugui_ebiten.New(cfg.Title, cfg.Width, cfg.Height))
		b.Platform(p)
	} else if *debug {
		logger.Warn("debug overlay needs the ebiten backend", zap.String("backend", cfg.Backend))
	}

	game, ctx, err := b.Build()
	if err != nil {
		return err
	}

	sc := scene.New(ctx)
	sc.Background = ramune.CornflowerBlue
	sc.Register(demo.Quitter{})
	demo.Register(sc.Storage())
	demo.SpawnBoxes(sc.Storage(), *boxes, cfg.Width, cfg.Height, rand.New(rand.NewPCG(*seed, *seed)))
	sc.Register(demo.NewBouncer(cfg.Width, cfg.Height))
	sc.Register(demo.Hello{})

	handle := sc.Handle
	if overlay {
		sc.Register(&debugui.ImguiSystem{})
		handle = debugui.SpawnStatsWindow(sc).Observe(sc.Handle)
	}

	sig, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.Run(sig, handle); err != nil {
		return err
	}
	for _, s := range sc.Stats().Systems {
		logger.Debug("system stats",
			zap.String("system", s.Name),
			zap.Int64("runs", s.Runs),
			zap.Duration("avg", s.AvgDuration),
			zap.Duration("max", s.MaxDuration),
		)
	}

	if *screenshot != "" {
		if last == nil {
			return fmt.Errorf("no frame was rendered")
		}
		if err := writePNG(*screenshot, last); err != nil {
			return err
		}
		logger.Info("screenshot saved", zap.String("path", *screenshot))
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
