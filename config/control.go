package config

import "errors"

// Control holds the integrator and radiation settings.
type Control struct {
	// StopAtTime ends the simulation early when not nil.
	StopAtTime         *float64         `json:"stop_at_time,omitempty" yaml:"stop_at_time,omitempty"`
	DtMultiplier       float64          `json:"dt_multiplier"          yaml:"dt_multiplier"`
	IncreasePairRateBy float64          `json:"increase_pair_rate_by"  yaml:"increase_pair_rate_by"`
	RNGSeed            int64            `json:"rng_seed"               yaml:"rng_seed"`
	RadiationMode      RadiationMode    `json:"radiation_mode"         yaml:"radiation_mode"`
	EquationOfMotion   EquationOfMotion `json:"equation_of_motion"     yaml:"equation_of_motion"`
	RadiationReaction  bool             `json:"radiation_reaction"     yaml:"radiation_reaction"`
	PairCreation       bool             `json:"pair_creation"          yaml:"pair_creation"`
	LCFA               bool             `json:"lcfa"                   yaml:"lcfa"`
}

func (r *reader) control(s *section) Control {
	c := Control{
		DtMultiplier:       s.number("dt_multiplier", 1),
		RadiationReaction:  s.boolean("radiation_reaction", true),
		PairCreation:       s.boolean("pair_creation", true),
		LCFA:               s.boolean("lcfa", false),
		RNGSeed:            s.integer("rng_seed", 0),
		IncreasePairRateBy: s.number("increase_pair_rate_by", 1),
		StopAtTime:         s.optional("stop_at_time"),
		RadiationMode: enum(s, "radiation_mode", "radiation mode",
			Quantum, radiationModes()),
		EquationOfMotion: enum(s, "equation_of_motion", "equation of motion",
			Lorentz, equationsOfMotion()),
	}

	if c.DtMultiplier <= 0 && !s.failed("dt_multiplier") {
		r.fail(errors.New("dt_multiplier must be positive"), s.field("dt_multiplier"), s.node)
	}

	if c.IncreasePairRateBy < 1 {
		r.fail(errors.New("increase_pair_rate_by must be at least 1"),
			s.field("increase_pair_rate_by"), s.node)
	}

	s.unknown()

	return c
}
