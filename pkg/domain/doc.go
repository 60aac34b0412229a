/*
Package domain contains the core domain models of the aiforms engine.

It defines the static description of a form (field specifications and the table
that holds them), the uniform response returned by every conversation step, and
the error taxonomy shared by the engine and its collaborators. This package is
kept pure and free of external dependencies like I/O or model backends.

# Key Entities

  - FieldSpec: One named, typed slot of the target output schema.
  - Table: The declaration-ordered registry of FieldSpecs for one session.
  - Envelope: What the host should show after a step (question, progress, errors).
  - LifecycleHooks: Callbacks for observability (questions, skips, answers).
*/
package domain
