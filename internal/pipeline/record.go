package pipeline

import (
	"fmt"
	"slices"

	"github.com/ziadkadry99/instructgen/internal/llm"
)

// Persona is the system turn every assembled record starts with. The
// personas used to elicit the intermediate generations are dropped.
const Persona = "You are a programming expert."

// Record is an instruction record: a system turn followed by a fixed,
// variant-specific sequence of user and assistant turns.
type Record []llm.Message

// newRecord prepends the persona turn.
func newRecord(turns ...llm.Message) Record {
	rec := make(Record, 0, len(turns)+1)
	rec = append(rec, system(Persona))
	return append(rec, turns...)
}

// Roles lists the role of each turn in order.
func (r Record) Roles() []llm.Role {
	roles := make([]llm.Role, len(r))
	for i, m := range r {
		roles[i] = m.Role
	}
	return roles
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	return slices.Clone(r)
}

// Validate checks the structural invariants: a leading system turn, known
// roles, and no system turn after the first.
func (r Record) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("record is empty")
	}
	if r[0].Role != llm.RoleSystem {
		return fmt.Errorf("first turn has role %q, want %q", r[0].Role, llm.RoleSystem)
	}
	for i, m := range r[1:] {
		if !m.Role.Valid() {
			return fmt.Errorf("turn %d has unknown role %q", i+1, m.Role)
		}
		if m.Role == llm.RoleSystem {
			return fmt.Errorf("turn %d repeats the system role", i+1)
		}
	}
	return nil
}

func system(content string) llm.Message {
	return llm.Message{Role: llm.RoleSystem, Content: content}
}

func user(content string) llm.Message {
	return llm.Message{Role: llm.RoleUser, Content: content}
}

func assistant(content string) llm.Message {
	return llm.Message{Role: llm.RoleAssistant, Content: content}
}
