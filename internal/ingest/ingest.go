// Package ingest declares the shared contract every concrete ballot
// reader (csv, json, and any future vendor format) implements, so a
// new format is one file satisfying Reader rather than a change to
// every caller that dispatches between formats.
package ingest

import (
	"io"

	"github.com/openslides/rcvtab/rcv"
)

// Reader turns a raw ballot file into the engine's boundary type.
type Reader interface {
	Read(r io.Reader) ([]rcv.RawBallot, error)
}

// ReaderFunc adapts a plain function to Reader.
type ReaderFunc func(r io.Reader) ([]rcv.RawBallot, error)

// Read calls f.
func (f ReaderFunc) Read(r io.Reader) ([]rcv.RawBallot, error) { return f(r) }
