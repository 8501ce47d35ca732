package main

import (
	"io"
	"os"
	"time"

	chromepdf "github.com/alnah/go-chromepdf"
)

// RenderPool is the renderer the render command drives: a bounded set of
// browser slots that is closed once the batch is done.
type RenderPool interface {
	chromepdf.HTMLRenderer
	Size() int
	Close() error
}

// Compile-time interface implementation check.
var _ RenderPool = (*chromepdf.Pool)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the renderer factory.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(size int, opts ...chromepdf.Option) RenderPool
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPool: func(size int, opts ...chromepdf.Option) RenderPool {
			return chromepdf.NewPool(size, opts...)
		},
	}
}
