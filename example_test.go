package ramune_test

import (
	"fmt"

	"github.com/plus3/ramune"
)

func Example() {
	game, ctx, err := ramune.NewGameBuilder().
		Title("hello").
		Backend("headless").
		Config(ramune.Config{
			Title:    "hello",
			Width:    160,
			Height:   120,
			TPS:      60,
			Backend:  "headless",
			Headless: ramune.HeadlessConfig{Frames: 3},
		}).
		Build()
	if err != nil {
		panic(err)
	}

	err = game.Poll(func(e ramune.Event) {
		switch e := e.(type) {
		case ramune.Resized:
			fmt.Println("resized", e.Width, e.Height)
		case ramune.Draw:
			e.Graphics.Clear(ramune.CornflowerBlue)
			s := e.Graphics.Push()
			s.DrawRect(50, 50, 50, 50)
			s.Pop()
		}
	})
	fmt.Println(err, ctx.Tick())
	// Output:
	// resized 160 120
	// <nil> 3
}
