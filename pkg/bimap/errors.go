package bimap

import "go.llib.dev/bimap/pkg/errorkit"

const (
	// ErrNullArgument is returned when a nil key or a nil mapping is given where a real one is required.
	ErrNullArgument errorkit.Error = "ErrNullArgument"
	// ErrDuplicateKey is returned when an insertion would break the one-to-one association.
	ErrDuplicateKey errorkit.Error = "ErrDuplicateKey"
	// ErrKeyNotFound is returned by an indexed lookup when the key is not present.
	ErrKeyNotFound errorkit.Error = "ErrKeyNotFound"
	// ErrInvalidKeyType is returned by the untyped adapter when a key has a different dynamic type than the table's key type.
	ErrInvalidKeyType errorkit.Error = "ErrInvalidKeyType"
	// ErrInconsistentState signals that the two tables were found out of sync.
	// The operation that detects it reverts its own changes before returning.
	ErrInconsistentState errorkit.Error = "ErrInconsistentState"
)

type side string

const (
	sideDirect  side = "direct"
	sideReverse side = "reverse"
)
