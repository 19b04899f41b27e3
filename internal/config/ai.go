package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// ContentGen is for per-phase question generation (quality matters,
	// runs behind the generation lock so it may be slower)
	ContentGen string `json:"contentGen"`

	// Grading is for semantic grading of phase5 answers (needs to be fast)
	Grading string `json:"grading"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			ContentGen: getEnvOrDefault("GEMINI_MODEL_CONTENT", "gemini-2.0-flash"),
			Grading:    getEnvOrDefault("GEMINI_MODEL_GRADING", "gemini-2.5-flash-preview-05-20"),
		},
		TimeoutMS: 30000, // generation runs behind the lock, allow 30s
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
