package lemon

// Encoder records commands into a CommandList. The first invalid call is
// remembered and returned from Finish; later calls are ignored.
type Encoder struct {
	list        *CommandList
	maxVertices int
	err         error
}

// NewEncoder returns an encoder that respects the device limits in info.
func NewEncoder(info Info) *Encoder {
	limit := info.MaxVertices - info.MaxVertices%3
	if limit < 3 {
		limit = 3
	}
	return &Encoder{
		list:        &CommandList{},
		maxVertices: limit,
	}
}

// Clear records a Clear command.
func (e *Encoder) Clear(target Handle, c Color) {
	if e.err != nil {
		return
	}
	e.list.commands = append(e.list.commands, Clear{Target: target, Color: c})
}

// Draw records a triangle list, splitting it into several Draw commands when
// it exceeds the device's vertex limit. An empty list records nothing.
func (e *Encoder) Draw(target Handle, vertices []Vertex) {
	if e.err != nil {
		return
	}
	if len(vertices)%3 != 0 {
		e.err = ErrVertexCount
		return
	}
	for len(vertices) > 0 {
		n := min(len(vertices), e.maxVertices)
		e.list.commands = append(e.list.commands, Draw{Target: target, Vertices: vertices[:n:n]})
		vertices = vertices[n:]
	}
}

// Blit records a Blit command.
func (e *Encoder) Blit(src, dst Handle) {
	if e.err != nil {
		return
	}
	e.list.commands = append(e.list.commands, Blit{Src: src, Dst: dst})
}

// Viewport records a Viewport command.
func (e *Encoder) Viewport(width, height int) {
	if e.err != nil {
		return
	}
	if width <= 0 || height <= 0 {
		e.err = ErrInvalidSize
		return
	}
	e.list.commands = append(e.list.commands, Viewport{Width: width, Height: height})
}

// Len returns the number of commands recorded so far.
func (e *Encoder) Len() int {
	return e.list.Len()
}

// Finish returns the recorded list and resets the encoder for reuse.
func (e *Encoder) Finish() (*CommandList, error) {
	list, err := e.list, e.err
	e.list = &CommandList{}
	e.err = nil
	if err != nil {
		return nil, err
	}
	return list, nil
}
