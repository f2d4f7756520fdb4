package organizer

// OutcomeKind tags the verdict reached for one eligible file.
type OutcomeKind string

const (
	OutcomeMoved   OutcomeKind = "moved"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeError   OutcomeKind = "error"
)

// Skip reasons.
const (
	ReasonNonConforming = "non-conforming name"
	ReasonUnsafeKey     = "unsafe grouping key"
)

// Outcome is the verdict for a single eligible file.
type Outcome struct {
	Kind OutcomeKind `json:"kind" yaml:"kind"`
	// File is the original base name.
	File   string `json:"file" yaml:"file"`
	Source string `json:"source" yaml:"source"`
	// Destination is set for moved files only.
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// CreatedDir is true on the outcome whose processing created the
	// grouping directory.
	CreatedDir bool `json:"created_dir,omitempty" yaml:"created_dir,omitempty"`
	DryRun     bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Summary aggregates a run. Outcomes are in processing order.
type Summary struct {
	Target   string    `json:"target" yaml:"target"`
	RunID    string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	DryRun   bool      `json:"dry_run" yaml:"dry_run"`
	Eligible int       `json:"eligible" yaml:"eligible"`
	Moved    int       `json:"moved" yaml:"moved"`
	Skipped  int       `json:"skipped" yaml:"skipped"`
	Errors   int       `json:"errors" yaml:"errors"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
}

func (s *Summary) record(o Outcome) {
	switch o.Kind {
	case OutcomeMoved:
		s.Moved++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeError:
		s.Errors++
	}
	s.Outcomes = append(s.Outcomes, o)
}

// CreatedDirs lists grouping keys whose directories this run created.
func (s *Summary) CreatedDirs() []string {
	var keys []string
	for _, o := range s.Outcomes {
		if o.CreatedDir {
			keys = append(keys, o.Key)
		}
	}
	return keys
}
