package usecase

import (
	"errors"

	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrMissingColumns        = table.ErrMissingColumns
	ErrAmbiguousJoin         = errors.New("ambiguous join key")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
