package biz

import (
	"errors"

	"github.com/streamvision/datagen/internal/randx"
)

// Error taxonomy for the generation core. Repositories and generators wrap
// these sentinels with context; the driver decides what to do with them.
var (
	// ErrConnection marks an unreachable sink. Fatal for the whole run.
	ErrConnection = errors.New("sink connection failed")

	// ErrDependencyNotSatisfied marks an empty foreign-key pool for a
	// generator that requires one.
	ErrDependencyNotSatisfied = errors.New("dependency not satisfied")

	// ErrBatchWrite marks a failed batch flush. The failed batch is rolled
	// back and the stage halts.
	ErrBatchWrite = errors.New("batch write failed")

	// ErrInvalidArgument marks malformed generation parameters, shared with
	// the sampling toolkit so a bad weight domain surfaces the same way as a
	// negative count.
	ErrInvalidArgument = randx.ErrInvalidArgument
)
