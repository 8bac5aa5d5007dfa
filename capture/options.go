package capture

import "time"

// capturerConfig holds internal configuration for a Capturer.
type capturerConfig struct {
	chromePath     string
	timeout        time.Duration
	noSandbox      bool
	headless       string
	autoDownload   bool
	viewportWidth  int64
	viewportHeight int64
	scale          float64
}

func defaultConfig() capturerConfig {
	return capturerConfig{
		timeout:        30 * time.Second,
		headless:       "new",
		viewportWidth:  1280,
		viewportHeight: 900,
		scale:          2,
	}
}

// Option configures a [Capturer].
type Option func(*capturerConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *capturerConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration of a single browser operation such
// as loading a page or taking one screenshot. Defaults to 30 seconds. A zero
// or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *capturerConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *capturerConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a compatible Chromium build when no executable
// path is configured. Downloads are cached between runs.
func WithAutoDownload() Option {
	return func(c *capturerConfig) {
		c.autoDownload = true
	}
}

// WithViewport sets the browser window size in CSS pixels used to lay out
// the dashboard before charts are captured. Defaults to 1280x900.
func WithViewport(width, height int64) Option {
	return func(c *capturerConfig) {
		if width > 0 && height > 0 {
			c.viewportWidth = width
			c.viewportHeight = height
		}
	}
}

// WithScale sets the device pixel ratio of captured images. Defaults to 2,
// which keeps charts sharp when printed at full page width.
func WithScale(scale float64) Option {
	return func(c *capturerConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}
