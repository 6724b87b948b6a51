package id3meta

import (
	"github.com/simonhull/id3meta/internal/types"
)

// ErrNoTag reports that a file has no tag of the kind being read.
var ErrNoTag = types.ErrNoTag

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedTagError is an alias to types.UnsupportedTagError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedTagError = types.UnsupportedTagError

// CorruptedTagError is an alias to types.CorruptedTagError.
// Re-exporting from internal/types to maintain public API.
type CorruptedTagError = types.CorruptedTagError

// EncodingError is an alias to types.EncodingError.
// Re-exporting from internal/types to maintain public API.
type EncodingError = types.EncodingError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning
