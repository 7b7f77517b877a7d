package schedule

// Params defines all configurable parameters for the priority scheduler.
type Params struct {
	// Need scores per mastery state. Failed must outrank unseen, which must
	// outrank mastered, for review-first ordering to hold.
	FailedScore   int
	UnseenScore   int
	MasteredScore int

	// DefaultTake is the playlist length used when the caller does not
	// request a specific size.
	DefaultTake int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance.
type ParamsConfig struct {
	FailedScore   int
	UnseenScore   int
	MasteredScore int
	DefaultTake   int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		FailedScore:   20, // attempted, never correct: highest priority
		UnseenScore:   10, // never attempted: moderate priority
		MasteredScore: 1,  // at least one success: low priority
		DefaultTake:   5,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.FailedScore > 0 {
		params.FailedScore = config.FailedScore
	}
	if config.UnseenScore > 0 {
		params.UnseenScore = config.UnseenScore
	}
	if config.MasteredScore > 0 {
		params.MasteredScore = config.MasteredScore
	}
	if config.DefaultTake > 0 {
		params.DefaultTake = config.DefaultTake
	}

	return params
}
