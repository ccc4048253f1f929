package models

// Drill is a practice drill from the content library, filtered by age group
type Drill struct {
	ID          string          `json:"id"`
	AgeGroup    string          `json:"ageGroup"`
	Name        string          `json:"name"`
	Type        DrillType       `json:"type"`
	Description string          `json:"description"`
	KeyPoints   []string        `json:"keyPoints"`
	Formation   string          `json:"formation"`
	Tactics     string          `json:"tactics"`
	Duration    *int            `json:"duration,omitempty"`
	Difficulty  DifficultyLevel `json:"difficulty"`
	Equipment   []string        `json:"equipment"`
	Visual      *string         `json:"visual,omitempty"`
}

// DrillType classifies a drill by skill focus
type DrillType string

const (
	DrillAttacking    DrillType = "attacking"
	DrillDefensive    DrillType = "defensive"
	DrillPositioning  DrillType = "positioning"
	DrillShooting     DrillType = "shooting"
	DrillPassing      DrillType = "passing"
	DrillDribbling    DrillType = "dribbling"
	DrillConditioning DrillType = "conditioning"
)

// DifficultyLevel grades drill difficulty
type DifficultyLevel string

const (
	Beginner     DifficultyLevel = "Beginner"
	Intermediate DifficultyLevel = "Intermediate"
	Advanced     DifficultyLevel = "Advanced"
)

// PlayStrategy is a tactical plan from the content library
type PlayStrategy struct {
	ID          string       `json:"id"`
	AgeGroup    string       `json:"ageGroup"`
	Name        string       `json:"name"`
	Type        StrategyType `json:"type"`
	Description string       `json:"description"`
	KeyPoints   []string     `json:"keyPoints"`
	Formation   string       `json:"formation"`
	Tactics     string       `json:"tactics"`
}

// StrategyType classifies a play strategy
type StrategyType string

const (
	StrategyAttacking  StrategyType = "attacking"
	StrategyDefensive  StrategyType = "defensive"
	StrategyTransition StrategyType = "transition"
	StrategySetPlay    StrategyType = "set_play"
)
