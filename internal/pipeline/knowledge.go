package pipeline

import (
	"fmt"

	"github.com/ziadkadry99/instructgen/internal/llm"
)

// knowledgeKind describes one knowledge-domain variant: what to ask about a
// domain and how to phrase the request for an answer.
type knowledgeKind struct {
	name        string
	description string
	persona     string
	ask         string
	answer      string
}

var knowledgeKinds = []knowledgeKind{
	{
		name:        "definition",
		description: "Question asking to define a core concept of a domain, and the definition.",
		persona:     "You are an expert educator who explains technical concepts precisely.",
		ask: "Generate a question that asks for the definition of one important concept, term, or component in %s. " +
			"The question should name the concept explicitly and be answerable without further context.",
		answer: "Provide a precise definition followed by a short example that illustrates it.",
	},
	{
		name:        "troubleshooting",
		description: "Realistic problem report in a domain and a step-by-step diagnosis.",
		persona:     "You are a senior engineer experienced in diagnosing production issues.",
		ask: "Describe a realistic problem that a practitioner might run into while working with %s. " +
			"Include the observed symptoms and any relevant error output, and phrase it as a request for help.",
		answer: "Diagnose the likely causes and give numbered steps to confirm and resolve the issue.",
	},
	{
		name:        "migration",
		description: "Migration scenario within a domain and a migration plan.",
		persona:     "You are a solutions architect who plans and executes system migrations.",
		ask: "Write a request for guidance on migrating an existing setup to, from, or within %s. " +
			"State the current state, the target state, and any constraints such as downtime or compatibility.",
		answer: "Produce a migration plan covering preparation, ordered steps, validation, and rollback.",
	},
	{
		name:        "configuration",
		description: "Configuration goal within a domain and the configuration that achieves it.",
		persona:     "You are an expert in configuring and tuning software systems.",
		ask: "Write a request for help configuring %s to meet a specific, concrete goal. " +
			"Mention the environment and the requirement the configuration must satisfy.",
		answer: "Give the configuration needed, with a brief explanation of each setting.",
	},
}

const respondOnly = "Please respond with the request only, no extra explanations."

func knowledgeVariants() []*Variant {
	vs := make([]*Variant, 0, len(knowledgeKinds))
	for _, k := range knowledgeKinds {
		vs = append(vs, k.variant())
	}
	return vs
}

func (k knowledgeKind) variant() *Variant {
	return &Variant{
		Name:        k.name,
		Description: k.description,
		Params:      []string{"domain"},
		Stages: []Stage{
			{
				Name: "question",
				Prompt: func(v Vars) []llm.Message {
					return []llm.Message{
						system(k.persona),
						user(fmt.Sprintf(k.ask, v["domain"])),
						user(respondOnly),
					}
				},
			},
			{
				Name: "answer",
				Prompt: func(v Vars) []llm.Message {
					return []llm.Message{
						system(k.persona),
						user(v["question"]),
						user(k.answer),
					}
				},
			},
		},
		Pattern: patternTwoTurn,
		Assemble: func(v Vars) Record {
			return newRecord(user(v["question"]), assistant(v["answer"]))
		},
	}
}
