/*
Package aiforms collects structured data through a conversation.

A form is a set of named, typed fields. The engine decides the order in which
the fields are asked (priority buckets, then dependencies), phrases one question
at a time, parses each free-text answer into the field's type and, once every
live field is answered, validates the whole set and materializes it into the
caller's output type.

# Concept

The engine owns ordering and conversational state only. Phrasing questions and
understanding answers are collaborators reached through narrow interfaces
(ports.QuestionGenerator, ports.AnswerParser), so a form runs the same with a
fixed template, an LLM backend, or a test double. Every step returns the same
envelope shape: the next question, progress, errors and a retry prompt.

# Key Features

  - Deterministic order: stable priority sort, dependency-first traversal, cycle detection.
  - Conditional fields: skip predicates evaluated against the answers so far.
  - Total fallback parsing: a misbehaving parser never blocks completion.
  - Typed results: answers are decoded into T and checked by T.Validate if present.

# Usage

	type Profile struct {
		Name       string   `json:"name" desc:"Your full name" form:"priority=critical"`
		Age        int      `json:"age" desc:"Age in years"`
		Skills     []string `json:"skills,omitempty" form:"examples=Go,Python,SQL"`
		Newsletter bool     `json:"newsletter" form:"priority=low"`
	}

	form, err := aiforms.New[Profile]()
	if err != nil {
		log.Fatal(err)
	}

	resp, err := form.Start(ctx)
	for err == nil && !resp.IsComplete {
		fmt.Println(resp.QuestionText())
		resp, err = form.Respond(ctx, readLine())
	}
	fmt.Printf("%+v\n", *resp.Data)

Forms can also be declared in YAML (see package formdef) and served over HTTP
or MCP (see pkg/adapters).
*/
package aiforms
