package types

// QuestionType partitions interview questions into technical and behavioral
type QuestionType string

// Question types. A generation call for one type never returns the other.
const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
)

// Valid reports whether the type is a known question type
func (t QuestionType) Valid() bool {
	return t == QuestionTechnical || t == QuestionBehavioral
}

// Difficulty represents a concrete per-question difficulty.
// "Mixed" is only a generation policy (see QuestionConfig) and is never
// stored on a question instance.
type Difficulty string

// Difficulty values
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	// DifficultyMixed is valid only as a QuestionConfig policy
	DifficultyMixed Difficulty = "Mixed"
)

// Valid reports whether the difficulty is a concrete per-question value
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Question represents one generated interview question
type Question struct {
	ID              string       `json:"id"`
	Type            QuestionType `json:"type"`
	Difficulty      Difficulty   `json:"difficulty"`
	Question        string       `json:"question"`
	Category        string       `json:"category"`
	AnswerFramework string       `json:"answer_framework,omitempty"`
	RelatedSkills   []string     `json:"related_skills,omitempty"`
	EstimatedTime   string       `json:"estimated_time,omitempty"`
}

// QuestionConfig holds the user-requested generation parameters.
// Counts are bounded 1-50; difficulty accepts the three concrete levels
// plus "Mixed" as a distribution instruction.
type QuestionConfig struct {
	TechnicalCount  int    `json:"technical_count" validate:"min=1,max=50"`
	BehavioralCount int    `json:"behavioral_count" validate:"min=1,max=50"`
	Difficulty      string `json:"difficulty" validate:"oneof=Beginner Intermediate Advanced Mixed"`
}
