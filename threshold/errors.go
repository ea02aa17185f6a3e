// SPDX-License-Identifier: MIT

package threshold

import "errors"

var (
	// ErrInvalidThreshold is returned when threshold text cannot be parsed
	// or a relative value lies outside [0,1].
	ErrInvalidThreshold = errors.New("threshold: invalid threshold")

	// ErrEmptyList is returned when a threshold list has no elements.
	ErrEmptyList = errors.New("threshold: list requires at least one element")

	// ErrThresholdCount is returned when coverage and quorum lists have
	// different lengths and neither has exactly one element.
	ErrThresholdCount = errors.New("threshold: number of coverage and quorum thresholds must match")
)
