package mdhtml

import "log/slog"

// DefaultRootTag wraps converted documents unless overridden.
const DefaultRootTag = "div"

// RenderOption configures conversion and rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	rootTag         string
	fragment        bool
	keepFrontMatter bool
	logger          *slog.Logger
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{rootTag: DefaultRootTag}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.rootTag == "" {
		cfg.rootTag = DefaultRootTag
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithRootTag sets the tag of the element wrapping the document.
func WithRootTag(tag string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.rootTag = tag
	}
}

// WithFragment renders block elements without the wrapping element.
func WithFragment(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.fragment = enabled
	}
}

// WithKeepFrontMatter disables stripping of a leading front matter block.
func WithKeepFrontMatter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.keepFrontMatter = enabled
	}
}

// WithLogger sets a logger receiving debug records about parsed blocks.
func WithLogger(logger *slog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}
