package sigtask

// Format selects the report flavor requested from the engine. Backward
// compatibility checking and human-readable output cannot be combined; the
// builder emits at most one of the two flags.
type Format int

const (
	FormatDefault Format = iota
	FormatBackward
	FormatHuman
)

func (f Format) String() string {
	switch f {
	case FormatBackward:
		return "backward"
	case FormatHuman:
		return "human"
	default:
		return "default"
	}
}

// NormalizeFormat collapses the two boolean build attributes into a single
// mode. When both are set, backward wins and the human flag is ignored.
func NormalizeFormat(backward, human bool) Format {
	switch {
	case backward:
		return FormatBackward
	case human:
		return FormatHuman
	default:
		return FormatDefault
	}
}

// TaskOptions describes one signature check. It is built once per task
// invocation from build attributes and discarded when the task completes.
type TaskOptions struct {
	Packages   []string
	Classpath  []string
	FileName   string
	APIVersion string
	Excludes   []string

	BinaryMode bool
	Format     Format
	OutputFile string
	Debug      bool
	ErrorAll   bool

	Negative    bool
	FailOnError bool
}
