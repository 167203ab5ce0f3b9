package model

// Customer status constants.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusPotential = "potential"
	StatusLost      = "lost"
)

// Customer level constants. LevelC is assigned when none is given.
const (
	LevelA = "A"
	LevelB = "B"
	LevelC = "C"
	LevelD = "D"
	LevelE = "E"
)

// Priority constants.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// Gender constants.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)
