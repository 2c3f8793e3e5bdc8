package pipeline

import "fmt"

// Config holds the sampling parameters shared by every call of a Runner.
// It is copied at construction and never modified afterwards.
type Config struct {
	Model     string
	TempMin   float64
	TempMax   float64
	TopP      float64
	MaxTokens int
}

// DefaultConfig returns the sampling defaults used by the coding pipelines.
func DefaultConfig() Config {
	return Config{
		Model:     "gpt-4o",
		TempMin:   0.3,
		TempMax:   0.7,
		TopP:      0.4,
		MaxTokens: 1024,
	}
}

// Validate checks that the bounds are usable.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.TempMin < 0 || c.TempMax > 2 {
		return fmt.Errorf("temperature bounds [%g, %g] must lie within [0, 2]", c.TempMin, c.TempMax)
	}
	if c.TempMin > c.TempMax {
		return fmt.Errorf("temperature min %g is greater than max %g", c.TempMin, c.TempMax)
	}
	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("top_p %g must be in (0, 1]", c.TopP)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	return nil
}
