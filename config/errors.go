// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalid indicates a run configuration that does not validate. The
// wrapped message names the offending field.
var ErrInvalid = errors.New("config: invalid run configuration")
