// Package pipeline turns one topic or content string into one instruction
// record by running a fixed sequence of chat-completion calls.
//
// A Variant is pure data: an ordered list of stages, each a function from the
// values bound so far to the turns of one request, plus an assemble function
// that repackages the stage outputs under a single system persona. The Runner
// is the only execution engine; adding a variant never touches it.
//
//	runner, err := pipeline.New(provider, pipeline.DefaultConfig())
//	qa, err := runner.Pipeline("qa")
//	rec, err := qa.Invoke(ctx, content)
//
// Every call samples its temperature uniformly from the configured bounds, so
// the same input can produce different records. Any failure aborts the whole
// invocation with an error matching ErrGenerationFailed; no partial record is
// returned.
package pipeline
