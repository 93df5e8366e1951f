// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidFrameGeometry = errors.New("invalid frame geometry: zero bytes per sample or zero channels")
)
