package lemon

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHandle     = errors.New("lemon: invalid handle")
	ErrClosed            = errors.New("lemon: device closed")
	ErrVertexCount       = errors.New("lemon: vertex count is not a multiple of 3")
	ErrInvalidSize       = errors.New("lemon: invalid target size")
	ErrUnsupportedFormat = errors.New("lemon: unsupported format")
)

// Stage identifies a shader stage.
type Stage uint8

const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// ShaderError is returned when a shader fails to compile.
type ShaderError struct {
	Stage Stage
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("lemon: %s shader failed to compile: %s", e.Stage, e.Log)
}

// LinkError is returned when a shader program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "lemon: shader program failed to link: " + e.Log
}
