package model

// ChoiceQuestion is a phase1 multiple-choice question.
type ChoiceQuestion struct {
	Prompt       string   `json:"prompt" bson:"prompt"`
	Choices      []string `json:"choices" bson:"choices"`
	CorrectIndex int      `json:"correctIndex" bson:"correctIndex"`
}

// SortItem is a phase2 classification item; Answer is the category the
// item actually belongs to.
type SortItem struct {
	Prompt    string     `json:"prompt" bson:"prompt"`
	CategoryA string     `json:"categoryA" bson:"categoryA"`
	CategoryB string     `json:"categoryB" bson:"categoryB"`
	Answer    SortAnswer `json:"answer" bson:"answer"`
}

// OpenQuestion is a free-answer question used by phases 3 and 4.
type OpenQuestion struct {
	Prompt string `json:"prompt" bson:"prompt"`
	Answer string `json:"answer" bson:"answer"`
}

// ThemeMenu is a phase3 theme with its own question list.
type ThemeMenu struct {
	ID        string         `json:"id" bson:"id"`
	Title     string         `json:"title" bson:"title"`
	Questions []OpenQuestion `json:"questions" bson:"questions"`
}

// MemoryPair is one phase5 question/answer pair shown during memorizing.
type MemoryPair struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// ContentSet bundles the question material for every phase. It is both
// the built-in default shape and the shape of generated overrides, where
// only the generated phase's slice is populated.
type ContentSet struct {
	Name   string           `json:"name,omitempty" bson:"name,omitempty"`
	Rapid  []ChoiceQuestion `json:"phase1,omitempty" bson:"phase1,omitempty"`
	Sort   []SortItem       `json:"phase2,omitempty" bson:"phase2,omitempty"`
	Menus  []ThemeMenu      `json:"phase3,omitempty" bson:"phase3,omitempty"`
	Buzzer []OpenQuestion   `json:"phase4,omitempty" bson:"phase4,omitempty"`
	Memory []MemoryPair     `json:"phase5,omitempty" bson:"phase5,omitempty"`
}

// GenerationRequest is what the content-generation collaborator consumes.
type GenerationRequest struct {
	Phase      Phase  `json:"phase"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

// GenerationUsage is the usage metadata reported by the generator.
type GenerationUsage struct {
	Model        string `json:"model"`
	PromptTokens int    `json:"promptTokens"`
	OutputTokens int    `json:"outputTokens"`
}

// GenerationResult is the generator's response: a ContentSet populated
// only for the requested phase, plus usage metadata.
type GenerationResult struct {
	Data  *ContentSet      `json:"data"`
	Usage *GenerationUsage `json:"usage,omitempty"`
}
