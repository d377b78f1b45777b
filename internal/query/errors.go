package query

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidPage     = fmt.Errorf("%w: page must be >= 1", ErrInvalidArgument)
	ErrInvalidPageSize = fmt.Errorf("%w: pageSize must be >= 1", ErrInvalidArgument)
)
