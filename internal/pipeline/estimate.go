package pipeline

import "github.com/ziadkadry99/instructgen/internal/llm"

// Usage is an upper-bound token estimate for one invocation.
type Usage struct {
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Add accumulates u into the receiver.
func (u *Usage) Add(o Usage) {
	u.Calls += o.Calls
	u.InputTokens += o.InputTokens
	u.OutputTokens += o.OutputTokens
}

// EstimateUsage bounds the tokens one run of v would consume without calling
// a provider. Every stage is assumed to use its full maxTokens of output, and
// each earlier output is assumed to appear once in every later prompt.
func EstimateUsage(v *Variant, vars Vars, maxTokens int, count func([]llm.Message) int) Usage {
	bound := make(Vars, len(vars)+len(v.Stages))
	for k, val := range vars {
		bound[k] = val
	}
	var u Usage
	for i, st := range v.Stages {
		u.Calls++
		u.InputTokens += count(st.Prompt(bound)) + i*maxTokens
		u.OutputTokens += maxTokens
		bound[st.Name] = ""
	}
	return u
}
