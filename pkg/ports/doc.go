/*
Package ports defines the driven ports (interfaces) of the aiforms engine.

These interfaces decouple the conversation core from the collaborators it calls
out to, allowing templated, model-backed or test implementations to be swapped
at session construction or afterwards.

# Key Interfaces

  - QuestionGenerator: Phrases the question for a field given the data so far.
  - AnswerParser: Turns raw user text into a typed value (best effort).
  - SchemaSource: Produces the field metadata of a form (YAML, struct tags, ...).
*/
package ports
