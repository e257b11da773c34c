// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidSettings indicates settings that failed validation.
	ErrInvalidSettings = errors.New("config: invalid settings")

	// ErrUnknownStrategy indicates a strategy name no package recognizes.
	ErrUnknownStrategy = errors.New("config: unknown strategy")
)
