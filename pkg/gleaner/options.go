package gleaner

type options struct {
	labelerKind string
	modelDir    string
	endpoint    string
	apiKey      string
	model       string
	patternPath string
	patterns    []Pattern
}

func defaultOptions() options {
	return options{
		labelerKind: "prose",
	}
}

// Option configures a Gleaner instance.
type Option func(*options)

// WithLabeler selects the statistical entity source by kind: "prose"
// (default, pure Go), "onnx", "remote", "genai", "heuristic", or "null".
func WithLabeler(kind string) Option {
	return func(o *options) { o.labelerKind = kind }
}

// WithModelDir sets the directory holding local model assets for the
// onnx source.
func WithModelDir(dir string) Option {
	return func(o *options) { o.modelDir = dir }
}

// WithEndpoint sets the service URL for the remote source.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithAPIKey sets the credential for the remote and genai sources.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithModel sets the model identifier for the genai source.
func WithModel(name string) Option {
	return func(o *options) { o.model = name }
}

// WithPatternFile replaces the built-in event rule table with one loaded
// from a YAML file.
func WithPatternFile(path string) Option {
	return func(o *options) { o.patternPath = path }
}

// Pattern is one event rule in source form: an uncompiled regular
// expression, the event type its matches yield, and the capture groups
// that become attributes (name to group index).
type Pattern struct {
	Type       string
	Pattern    string
	Attributes map[string]int
}

// WithPatterns replaces the built-in event rule table with the given
// rules. Rules that are incomplete or whose pattern does not compile are
// skipped with a warning. Takes precedence over WithPatternFile.
func WithPatterns(patterns []Pattern) Option {
	return func(o *options) { o.patterns = patterns }
}
