package model

type MutationKind string

const (
	MutationInsert  MutationKind = "insert"
	MutationReplace MutationKind = "replace"
	MutationDelete  MutationKind = "delete"
)

type Warning string

// Mutation is the persist instruction produced by a lifecycle transition.
type Mutation struct {
	Kind     MutationKind
	Record   Record
	Warnings []Warning
}
