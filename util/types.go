package util

import "io"

type Equaler interface {
	Equal(Equaler) bool
}

// Dumper is implemented by structures with a human readable text form.
type Dumper interface {
	WriteText(writer io.Writer) error
}
