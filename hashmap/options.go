package hashmap

type options[K comparable] struct {
	hasher Hasher[K]
}

// Option configures a table on construction
type Option[K comparable] func(*options[K])

// WithHasher makes the table use the given hasher instead of DefaultHasher.
// A nil hasher is ignored.
func WithHasher[K comparable](hasher Hasher[K]) Option[K] {
	return func(opts *options[K]) {
		if hasher != nil {
			opts.hasher = hasher
		}
	}
}

func buildOptions[K comparable](opts []Option[K]) *options[K] {
	built := new(options[K])
	for _, opt := range opts {
		opt(built)
	}
	if built.hasher == nil {
		built.hasher = DefaultHasher[K]()
	}
	return built
}
