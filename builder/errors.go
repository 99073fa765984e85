// SPDX-License-Identifier: MIT
// Package: roadgrade/builder
//
// errors.go: sentinel errors for the builder package.
//
// Callers branch with errors.Is; constructors attach method context with %w.

package builder

import "errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is below
// the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without an RNG
// (WithSeed/WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or an inconsistent result.
var ErrConstructFailed = errors.New("builder: construction failed")
