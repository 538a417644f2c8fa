package particle

// EmitterProfile describes one kind of particle emission (hover or burst) as written
// in a tuning file. Every numeric field uses value notation (see ParseRange) so a
// profile can be tweaked without recompiling.
type EmitterProfile struct {
	// Count is the number of particles emitted per trigger. Burst counts are
	// normally taken from the variant instead; a non-empty Count overrides it.
	Count string `yaml:"count,omitempty"`

	// Jitter is the side of the square box, centered on the pointer, that
	// emission positions are spread over (像素).
	Jitter string `yaml:"jitter"`

	// BaseSize is the per-particle base radius handed to the simulator.
	BaseSize string `yaml:"base_size"`

	// Speed is the launch speed magnitude before the unit conversion factor.
	Speed string `yaml:"speed"`

	// SizeScale multiplies BaseSize to give the final particle size.
	SizeScale string `yaml:"size_scale"`

	// Lift is subtracted from the vertical velocity at launch (upward bias).
	Lift string `yaml:"lift"`
}

// Profile is an EmitterProfile with every field parsed.
type Profile struct {
	Count     Range
	Jitter    Range
	BaseSize  Range
	Speed     Range
	SizeScale Range
	Lift      Range
	HasCount  bool
}
