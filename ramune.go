// Package ramune is an opinionated 2D game framework.
//
// A game is built with a GameBuilder and driven by a single callback that
// receives every Event: input, a fixed-rate Update and a Draw carrying the
// frame's Graphics. Drawing happens inside Scopes, which collect shapes,
// sort them by depth and hand them to the lemon graphics layer in as few
// draw calls as the device allows.
//
// Window platforms register themselves when imported. The default backend,
// "ebiten", needs the platform/ebitenwin package linked into the program:
//
//	import _ "github.com/plus3/ramune/platform/ebitenwin"
//
//	game, _, err := ramune.NewGameBuilder().Title("hello").Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = game.Poll(func(e ramune.Event) {
//		if d, ok := e.(ramune.Draw); ok {
//			d.Graphics.Clear(ramune.CornflowerBlue)
//			s := d.Graphics.Push()
//			s.DrawRect(50, 50, 50, 50)
//			s.Pop()
//		}
//	})
package ramune

import (
	"errors"

	"go.uber.org/zap"

	"github.com/plus3/ramune/internal/logging"
)

var (
	// ErrRunning is returned when a Game is run while already running.
	ErrRunning = errors.New("ramune: game is already running")

	ErrNilCallback   = errors.New("ramune: nil event callback")
	ErrInvalidConfig = errors.New("ramune: invalid config")
)

// SetLogger sets the logger used by ramune and its sub-packages. Ramune is
// silent until a logger is set; nil restores silence.
func SetLogger(l *zap.Logger) {
	logging.Set(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *zap.Logger {
	return logging.L()
}
