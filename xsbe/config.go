package xsbe

// A Config holds the options accepted by Compile and by the decode and
// encode entry points. Compile reads only the logging options; the
// decode functions read only IgnoreUnexpected. Built with the
// functional-options pattern: zero value is usable, and each Option
// both applies a setting and returns the Option that would undo it.
type Config struct {
	ignoreUnexpected bool
	logger           Logger
	loglevel         int
}

// An Option customizes a Config.
type Option func(*Config) Option

// IgnoreUnexpected controls whether UnexpectedAttribute and
// UnexpectedElement (and their duplicate-detection dependents) are
// silenced at decode time rather than returned as errors. Off by
// default. It takes effect only when passed to DecodeFromXML,
// DecodeBytes or DecodeString; Compile does not record it in the
// Document it returns.
func IgnoreUnexpected(v bool) Option {
	return func(cfg *Config) Option {
		prev := cfg.ignoreUnexpected
		cfg.ignoreUnexpected = v
		return IgnoreUnexpected(prev)
	}
}

// LogOutput directs compiler diagnostics to logger. Off by default: nil
// means no diagnostics are produced. Decode and encode calls log nothing.
func LogOutput(logger Logger) Option {
	return func(cfg *Config) Option {
		prev := cfg.logger
		cfg.logger = logger
		return LogOutput(prev)
	}
}

// LogLevel sets the diagnostic verbosity. 0 (the default) disables
// logging even when a Logger is set; any level above 0 logs one line per
// compiled schema, and levels above 3 additionally log one line per
// compiled node (its name, result name and node kind).
func LogLevel(level int) Option {
	return func(cfg *Config) Option {
		prev := cfg.loglevel
		cfg.loglevel = level
		return LogLevel(prev)
	}
}

// Logger receives optional diagnostics from compilation. *log.Logger
// satisfies this interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

func (cfg *Config) logf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 0 {
		cfg.logger.Printf(format, v...)
	}
}

func (cfg *Config) debugf(format string, v ...interface{}) {
	if cfg.logger != nil && cfg.loglevel > 3 {
		cfg.logger.Printf(format, v...)
	}
}

// Option applies opts to cfg, returning the Option that would revert
// the last one applied.
func (cfg *Config) Option(opts ...Option) (previous Option) {
	for _, opt := range opts {
		previous = opt(cfg)
	}
	return previous
}
