package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed matches every error returned by an aborted invocation.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrNoChoices is the cause recorded when a response carries no candidates.
	ErrNoChoices = errors.New("response contained no choices")

	// ErrUnknownPipeline is returned when a variant name is not registered.
	ErrUnknownPipeline = errors.New("unknown pipeline")
)

// snippetLen bounds how much of the input is quoted in error messages.
const snippetLen = 60

// GenerationError reports the stage that aborted an invocation.
type GenerationError struct {
	Pipeline string
	Stage    string
	Input    string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed in %s/%s for input %q: %v",
		e.Pipeline, e.Stage, snippet(e.Input), e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is makes every GenerationError match ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= snippetLen {
		return s
	}
	return string(r[:snippetLen]) + "..."
}
