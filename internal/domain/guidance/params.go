package guidance

// Params defines all configurable parameters for the intervention policy.
type Params struct {
	// Overwhelm score weights per telemetry counter
	RapidClickWeight float64
	BackForthWeight  float64
	PauseWeight      float64

	// Thresholds
	OverwhelmThreshold   float64
	HelpRequestThreshold int

	// Fixed prompt messages per summon reason
	UserRequestMessage string
	OverwhelmedMessage string
	AssistanceMessage  string
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance.
type ParamsConfig struct {
	RapidClickWeight float64
	BackForthWeight  float64
	PauseWeight      float64

	OverwhelmThreshold   float64
	HelpRequestThreshold int

	UserRequestMessage string
	OverwhelmedMessage string
	AssistanceMessage  string
}

// NewDefaultParams creates a new Params instance with default values.
// The weights and thresholds are the tuned production defaults: rapid click
// bursts count double, navigation reversals slightly above single weight,
// hesitation pauses at single weight, with a summon gate at 6.0.
func NewDefaultParams() *Params {
	return &Params{
		RapidClickWeight: 2.0,
		BackForthWeight:  1.2,
		PauseWeight:      1.0,

		OverwhelmThreshold:   6.0,
		HelpRequestThreshold: 2,

		UserRequestMessage: "I'm here! What would you like to work through together?",
		OverwhelmedMessage: "No rush. Let's slow down and take this one step at a time.",
		AssistanceMessage:  "Looks like this one is tricky. Want a hand breaking it down?",
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.RapidClickWeight > 0 {
		params.RapidClickWeight = config.RapidClickWeight
	}
	if config.BackForthWeight > 0 {
		params.BackForthWeight = config.BackForthWeight
	}
	if config.PauseWeight > 0 {
		params.PauseWeight = config.PauseWeight
	}

	if config.OverwhelmThreshold > 0 {
		params.OverwhelmThreshold = config.OverwhelmThreshold
	}
	if config.HelpRequestThreshold > 0 {
		params.HelpRequestThreshold = config.HelpRequestThreshold
	}

	if config.UserRequestMessage != "" {
		params.UserRequestMessage = config.UserRequestMessage
	}
	if config.OverwhelmedMessage != "" {
		params.OverwhelmedMessage = config.OverwhelmedMessage
	}
	if config.AssistanceMessage != "" {
		params.AssistanceMessage = config.AssistanceMessage
	}

	return params
}
