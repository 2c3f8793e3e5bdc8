package pipeline

import "github.com/ziadkadry99/instructgen/internal/llm"

const (
	questionPersona = "You are an expert in training large language models."
	answerRequest   = "Please answer the following question."

	questionInstruction = "Based on the above content, generate a clear and detailed question that would allow someone to answer it without referring back to the content." +
		" The question should contain enough information and context for answering." +
		" If the question is based on an example code, make sure the question retains that example code in the question itself." +
		" Your response should only be the question, without any extra information or explanation."
)

var qaStages = []Stage{
	{
		Name: "question",
		Prompt: func(v Vars) []llm.Message {
			return []llm.Message{
				system(questionPersona),
				user("Below is the content for generating a question:"),
				user(v["content"]),
				user(questionInstruction),
			}
		},
	},
	{
		Name: "answer",
		Prompt: func(v Vars) []llm.Message {
			return []llm.Message{
				system(Persona),
				user(answerRequest),
				user(v["question"]),
			}
		},
	},
}

func basicVariants() []*Variant {
	return []*Variant{
		{
			Name:        "qa",
			Description: "Question and answer generated from a block of source content.",
			Params:      []string{"content"},
			Stages:      qaStages,
			Pattern:     []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleUser, llm.RoleAssistant},
			Assemble: func(v Vars) Record {
				return newRecord(
					user(answerRequest),
					user(v["question"]),
					assistant(v["answer"]),
				)
			},
		},
		{
			// Kept for datasets built before the answer moved to an
			// assistant turn.
			Name:        "qa-legacy",
			Description: "Q&A with the answer as a trailing user turn (legacy layout; prefer qa).",
			Params:      []string{"content"},
			Stages:      qaStages,
			Pattern:     []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleUser, llm.RoleUser},
			Assemble: func(v Vars) Record {
				return newRecord(
					user(answerRequest),
					user(v["question"]),
					user(v["answer"]),
				)
			},
		},
	}
}
