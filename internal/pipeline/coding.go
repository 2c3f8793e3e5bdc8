package pipeline

import (
	"fmt"

	"github.com/ziadkadry99/instructgen/internal/llm"
)

const (
	polyglotPersona = "You are an expert in multiple programming languages."
	variousPersona  = "You are an expert in various programming languages."

	codeOnly      = "Please respond with the code only, without any additional explanations or comments."
	completedOnly = "Respond with the completed code only, without any extra commentary."
)

var (
	patternTwoTurn   = []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant}
	patternThreeTurn = []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleUser, llm.RoleAssistant}
)

// taskPrompt asks for a short programming exercise in the given language.
func taskPrompt(language string) string {
	return fmt.Sprintf("Generate a concise coding task in %s that is formatted as a programming exercise. "+
		"The task should be clear, well-structured, and easily understandable. Keep the description short and to the point. "+
		"Please respond with the task only, no extra explanations.", language)
}

// taskStage generates a task from the named language parameter.
func taskStage(param string) Stage {
	return Stage{
		Name: "task",
		Prompt: func(v Vars) []llm.Message {
			return []llm.Message{system(polyglotPersona), user(taskPrompt(v[param]))}
		},
	}
}

// codeStage writes code for the generated task.
var codeStage = Stage{
	Name: "code",
	Prompt: func(v Vars) []llm.Message {
		return []llm.Message{system(polyglotPersona), user(v["task"] + "\n" + codeOnly)}
	},
}

func optimizationRequest(language, code string) string {
	return fmt.Sprintf("Here is my %s code:\n%s\n", language, code) +
		"Please optimize the following code for better performance, readability, and maintainability, without changing its original functionality. " +
		"Focus on reducing redundancy, improving efficiency, and ensuring clear, concise code. " +
		completedOnly
}

func errorReviewRequest(language, errMsg string) string {
	return fmt.Sprintf("Please review the following error message generated in the %s programming language:\n\n%s\n\n", language, errMsg)
}

const (
	documentationRequest = "Please generate detailed documentation for the following code. The documentation should include:\n" +
		"1. A brief overview of the purpose of the code.\n" +
		"2. Descriptions of key functions, methods, and classes, including their inputs, outputs, and behavior.\n" +
		"3. Any important details or assumptions made in the code.\n" +
		"4. A section on how to use or run the code, if applicable.\n" +
		"5. Any potential limitations or areas for improvement.\n\n" +
		"Here is the code to document:\n\n"

	reviewRequest = "Please review the following code thoroughly and provide detailed feedback. Focus on the following aspects:\n" +
		"1. **Readability and Style**: Is the code well-structured, commented, and easy to read? Are variable and function names descriptive?\n" +
		"2. **Functionality**: Does the code perform as intended? Identify any potential issues, bugs, or edge cases that may not be handled.\n" +
		"3. **Efficiency**: Could the code be optimized for better performance? Highlight any redundant or inefficient sections.\n" +
		"4. **Best Practices**: Does the code adhere to best practices for the language or framework? Are there opportunities to improve maintainability or scalability?\n" +
		"5. **Security**: Point out any potential security vulnerabilities and suggest mitigations.\n" +
		"6. **Suggestions for Improvement**: Provide actionable recommendations to improve the overall quality of the code.\n\n" +
		"Here is the code to review:\n\n"

	debugRequest = "Here is a code snippet that contains issues. " +
		"Could you please identify and fix the problems in the code? " +
		"Ensure that the code functions correctly after the changes. Here is the code:"

	explanationInstruction = "Based on the provided code, generate a clear and detailed explanation of what the code does. " +
		"The explanation should be easy to understand, with a focus on the purpose of the code, its key components, and any important logic or functions. " +
		"Make sure to explain how the code works step-by-step, including any critical parts like loops, conditions, or function calls. " +
		"Your response should be focused solely on the explanation, without additional information or comments."
)

func codingVariants() []*Variant {
	return []*Variant{
		{
			Name:        "sql",
			Description: "SQL question and the query that answers it. Takes no input.",
			Stages: []Stage{
				{
					Name: "question",
					Prompt: func(Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert in SQL query design."),
							user("Please generate a well-defined SQL query question for any task or functionality that requires retrieving or manipulating data from a database. " +
								"Please respond with the question only, no extra explanations."),
						}
					},
				},
				{
					Name: "query",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert in SQL"),
							user(v["question"] + "\nPlease respond with the SQL query only, without any additional explanations or comments."),
						}
					},
				},
			},
			Pattern: patternTwoTurn,
			Assemble: func(v Vars) Record {
				return newRecord(user(v["question"]), assistant(v["query"]))
			},
		},
		{
			Name:        "generation",
			Description: "Task-oriented code generation request and its implementation.",
			Params:      []string{"language"},
			Stages: []Stage{
				{
					Name: "request",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are a seasoned expert in various programming languages."),
							user(fmt.Sprintf("Could you generate a request for code generation in %s?", v["language"]) +
								" The request should include a comprehensive description of the desired functionality, expected behavior, and any specific requirements or constraints for the implementation." +
								" Please ensure that the request is clear, concise, easily understandable and in Task-oriented style."),
							user("Kindly respond with the request only, without any additional explanations or commentary."),
						}
					},
				},
				{
					Name: "code",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{system(variousPersona), user(v["request"]), user(codeOnly)}
					},
				},
			},
			Pattern: patternTwoTurn,
			Assemble: func(v Vars) Record {
				return newRecord(user(v["request"]), assistant(v["code"]))
			},
		},
		{
			Name:        "documentation",
			Description: "Generated code and its documentation.",
			Params:      []string{"language"},
			Stages: []Stage{
				taskStage("language"),
				codeStage,
				{
					Name: "documentation",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert in generating clear and comprehensive documentation for code."),
							user(documentationRequest + v["code"]),
						}
					},
				},
			},
			Pattern: patternThreeTurn,
			Assemble: func(v Vars) Record {
				return newRecord(
					user("Please document the following code"),
					user(v["code"]),
					assistant(v["documentation"]),
				)
			},
		},
		{
			Name:        "review",
			Description: "Generated code and a structured review of it.",
			Params:      []string{"language"},
			Stages: []Stage{
				taskStage("language"),
				codeStage,
				{
					Name: "review",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert code reviewer skilled in multiple programming languages."),
							user(reviewRequest + v["code"]),
						}
					},
				},
			},
			Pattern: patternThreeTurn,
			Assemble: func(v Vars) Record {
				return newRecord(
					user(fmt.Sprintf("Review the following %s code and provide feedback:", v["language"])),
					user(v["code"]),
					assistant(v["review"]),
				)
			},
		},
		{
			Name:        "optimization",
			Description: "Generated code and an optimized rewrite with identical behavior.",
			Params:      []string{"language"},
			Stages: []Stage{
				taskStage("language"),
				codeStage,
				{
					Name: "optimized",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{system(polyglotPersona), user(optimizationRequest(v["language"], v["code"]))}
					},
				},
			},
			Pattern: patternTwoTurn,
			Assemble: func(v Vars) Record {
				return newRecord(
					user(optimizationRequest(v["language"], v["code"])),
					assistant(v["optimized"]),
				)
			},
		},
		{
			Name:        "translation",
			Description: "Code in one language translated to another. Inputs: from, to.",
			Params:      []string{"from", "to"},
			Stages: []Stage{
				taskStage("from"),
				codeStage,
				{
					Name: "translated",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system(polyglotPersona),
							user(fmt.Sprintf("Here is my %s code:\n%s\n", v["from"], v["code"]) +
								fmt.Sprintf("Please translate the following code to %s. ", v["to"]) +
								"Ensure that the functionality of the code does not change during the translation and the logic of the program remains exactly the same. " +
								completedOnly),
						}
					},
				},
			},
			Pattern: patternThreeTurn,
			Assemble: func(v Vars) Record {
				return newRecord(
					user(fmt.Sprintf("Convert this %s code to %s:", v["from"], v["to"])),
					user(v["code"]),
					assistant(v["translated"]),
				)
			},
		},
		{
			Name:        "completion",
			Description: "Task, skeleton code with placeholders, and the completed code.",
			Params:      []string{"language"},
			Stages: []Stage{
				{
					Name: "task",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system(polyglotPersona),
							user(fmt.Sprintf("Generate a concise coding task in %s that is formatted as a programming exercise. ", v["language"]) +
								"The task should be clear, well-structured, and easily understandable. Keep the description short and to the point."),
							user("Please respond with the task only, no extra explanations."),
						}
					},
				},
				{
					Name: "incomplete",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system(variousPersona),
							user("Please generate an incomplete version of the following request."),
							user(v["task"]),
							user("The code should contain the basic structure, but key parts like logic or functionality should be missing. " +
								"Leave placeholders for these missing parts so I can complete them. " +
								"Please provide only the code without any additional comments or explanations."),
						}
					},
				},
				{
					Name: "complete",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system(variousPersona),
							user("Here is my incomplete code:"),
							user(v["incomplete"]),
							user("Based on the following request:"),
							user(v["task"]),
							user("Please complete the code by filling in the missing logic and functionality. " +
								"Ensure the solution aligns with the task description provided above. " +
								completedOnly),
						}
					},
				},
			},
			Pattern: []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleUser, llm.RoleUser, llm.RoleUser, llm.RoleAssistant},
			Assemble: func(v Vars) Record {
				return newRecord(
					user("Here is the task you need to complete:"),
					user(v["task"]),
					user("Below is the incomplete code:"),
					user(v["incomplete"]),
					assistant(v["complete"]),
				)
			},
		},
		{
			Name:        "debugging",
			Description: "Buggy code and the corrected version with an explanation of the fix.",
			Params:      []string{"language"},
			Stages: []Stage{
				{
					Name: "buggy",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system(variousPersona),
							user(fmt.Sprintf("Can you provide an example of code in %s for any task or functionality that contains a bug or issue? The code should be incorrect or malfunctioning.", v["language"])),
							user(codeOnly),
						}
					},
				},
				{
					Name: "fix",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{system(variousPersona), user(debugRequest), user(v["buggy"])}
					},
				},
			},
			Pattern: patternThreeTurn,
			Assemble: func(v Vars) Record {
				return newRecord(user(debugRequest), user(v["buggy"]), assistant(v["fix"]))
			},
		},
		{
			Name:        "explanation",
			Description: "Example code and a step-by-step explanation of it.",
			Params:      []string{"language"},
			Stages: []Stage{
				{
					Name: "code",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system(variousPersona),
							user(fmt.Sprintf("Please provide an example of %s code that accomplishes any given task or functionality.", v["language"])),
							user("Kindly ensure that your response contains only the code, without any supplementary explanations or commentary."),
						}
					},
				},
				{
					Name: "explanation",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert in explaining code and clarifying programming concepts."),
							user("Below is the code for which you need to generate an explanation:"),
							user(v["code"]),
							user(explanationInstruction),
						}
					},
				},
			},
			Pattern: patternThreeTurn,
			Assemble: func(v Vars) Record {
				return newRecord(user("Please explain about this given code"), user(v["code"]), assistant(v["explanation"]))
			},
		},
		{
			Name:        "error-explanation",
			Description: "Realistic error message and an explanation of its cause and fix.",
			Params:      []string{"language"},
			Stages: []Stage{
				{
					Name: "error",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert in debugging and explaining programming errors."),
							user(fmt.Sprintf("Generate a realistic coding error message that might occur in a programming language %s. ", v["language"]) +
								"Please respond with the coding error message only, no extra explanations."),
						}
					},
				},
				{
					Name: "explanation",
					Prompt: func(v Vars) []llm.Message {
						return []llm.Message{
							system("You are an expert in debugging and providing detailed explanations for programming errors."),
							user(errorReviewRequest(v["language"], v["error"]) +
								"Provide a comprehensive explanation of the cause of this error and recommend steps to resolve or debug it. " +
								"Ensure your explanation is clear, concise, and suitable for someone looking to understand and fix the issue."),
						}
					},
				},
			},
			Pattern: patternTwoTurn,
			Assemble: func(v Vars) Record {
				return newRecord(user(errorReviewRequest(v["language"], v["error"])), assistant(v["explanation"]))
			},
		},
	}
}
