// Package headless runs a ramune game without a window, rendering on the
// CPU. It is used for tests, screenshots and benchmarks.
package headless

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/lemon/soft"
	"github.com/plus3/ramune/platform"
)

// Name is the registry name of the headless platform.
const Name = "headless"

// Config controls the headless runner.
type Config struct {
	// Hz paces the loop in real time. Zero runs frames back to back.
	Hz int
	// Frames stops the run after this many frames. Zero runs until the
	// handler quits or the context is cancelled.
	Frames uint64
	// Events are fed to the handler before the Update of the given frame.
	// Frames are numbered from 1.
	Events map[uint64][]input.Event
	// AfterFrame runs after every frame while the device is still open.
	AfterFrame func(frame uint64, dev lemon.Device) error
}

// Platform is the headless platform.
type Platform struct {
	cfg Config
}

// New returns a headless platform.
func New(cfg Config) *Platform {
	return &Platform{cfg: cfg}
}

func init() {
	platform.Register(Name, func() platform.Platform {
		return New(Config{Hz: 60})
	})
}

func (p *Platform) Name() string { return Name }

// Run drives h until it quits, the frame limit is reached or ctx is done.
// Every frame advances time by exactly one tick regardless of Hz, so runs
// are deterministic.
func (p *Platform) Run(ctx context.Context, opts platform.Options, h platform.Handler) error {
	log := logging.Named("platform.headless")

	dev, err := soft.New(opts.Width, opts.Height)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := h.Start(dev); err != nil {
		return err
	}
	defer h.Stop()
	h.Resize(opts.Width, opts.Height)

	var tick <-chan time.Time
	if p.cfg.Hz > 0 {
		t := time.NewTicker(time.Second / time.Duration(p.cfg.Hz))
		defer t.Stop()
		tick = t.C
	}

	log.Info("running",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("hz", p.cfg.Hz),
		zap.Uint64("frames", p.cfg.Frames),
	)

	dt := opts.TickDuration()
	for frame := uint64(1); ; frame++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		for _, ev := range p.cfg.Events[frame] {
			h.Input(ev)
		}

		quit, err := platform.Step(h, dt)
		if err != nil {
			return err
		}
		if p.cfg.AfterFrame != nil {
			if err := p.cfg.AfterFrame(frame, dev); err != nil {
				return err
			}
		}
		if quit {
			log.Info("handler quit", zap.Uint64("frame", frame))
			return nil
		}
		if p.cfg.Frames > 0 && frame >= p.cfg.Frames {
			return nil
		}
	}
}
