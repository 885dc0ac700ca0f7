package scene

import (
	"go.uber.org/zap"

	"github.com/plus3/ramune/ecs"
)

// maxFlushRounds bounds how often commands queued by deferred functions
// are flushed again within one Update.
const maxFlushRounds = 16

// Commands buffers changes to the scene requested while systems run: the
// entity commands of ecs.Commands plus system registration. They are
// applied after the last system of the Update.
type Commands struct {
	ecs.Commands

	registers []System
	removes   []System
}

// Register queues a system to join the scene. It first runs on the next
// Update.
func (c *Commands) Register(sys System) {
	c.registers = append(c.registers, sys)
}

// Remove queues a system to leave the scene.
func (c *Commands) Remove(sys System) {
	c.removes = append(c.removes, sys)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.registers) + len(c.removes) + c.Commands.Len()
}

// flush applies system removals, then registrations, then the entity
// commands and deferred functions. Anything those queue is applied in
// further rounds until the buffer is empty, up to maxFlushRounds; the
// rest waits for the next Update.
func (c *Commands) flush(s *Scene) {
	for round := 0; c.Len() > 0; round++ {
		if round == maxFlushRounds {
			s.log.Warn("commands still queued after flush", zap.Int("pending", c.Len()))
			return
		}
		removes, registers := c.removes, c.registers
		c.removes, c.registers = nil, nil
		for _, sys := range removes {
			s.Remove(sys)
		}
		for _, sys := range registers {
			s.Register(sys)
		}
		c.Commands.Flush(s.storage)
	}
}
