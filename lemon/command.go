package lemon

import "fmt"

// Command is one step of a CommandList.
type Command interface {
	command()
}

// Clear fills a target with a color.
type Clear struct {
	Target Handle
	Color  Color
}

// Draw renders a triangle list into a target. Vertices must not be modified
// until the list has been submitted.
type Draw struct {
	Target   Handle
	Vertices []Vertex
}

// Blit stretches the whole of Src over the whole of Dst with nearest
// filtering, replacing what Dst held.
type Blit struct {
	Src Handle
	Dst Handle
}

// Viewport sets the pixel space Draw coordinates map onto.
type Viewport struct {
	Width, Height int
}

func (Clear) command()    {}
func (Draw) command()     {}
func (Blit) command()     {}
func (Viewport) command() {}

func commandName(c Command) string {
	switch c.(type) {
	case Clear:
		return "clear"
	case Draw:
		return "draw"
	case Blit:
		return "blit"
	case Viewport:
		return "viewport"
	default:
		return fmt.Sprintf("%T", c)
	}
}

// CommandList is an ordered list of commands ready for Device.Submit.
type CommandList struct {
	commands []Command
}

// Commands returns the recorded commands. The slice is owned by the list.
func (l *CommandList) Commands() []Command {
	if l == nil {
		return nil
	}
	return l.commands
}

// Len returns the number of commands.
func (l *CommandList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.commands)
}

// Reset empties the list, keeping its storage.
func (l *CommandList) Reset() {
	clear(l.commands)
	l.commands = l.commands[:0]
}

// Execute runs fn for every command in order, stopping at the first error.
// The error is annotated with the failing command's position.
func Execute(list *CommandList, fn func(Command) error) error {
	for i, cmd := range list.Commands() {
		if err := fn(cmd); err != nil {
			return fmt.Errorf("lemon: command %d (%s): %w", i, commandName(cmd), err)
		}
	}
	return nil
}
