package capture

import "errors"

// ErrClosed is returned when attempting to use a closed [Capturer].
var ErrClosed = errors.New("capture: capturer is closed")
