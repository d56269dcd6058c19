// Package store defines the persistence interfaces for users, flashcards,
// generations and generation error logs, the error values they return, and
// the transaction helper used to group writes into one atomic unit.
//
// Every read or write of user-owned rows is scoped by a Scope: a row is
// visible only when both its id and its owner match. A row that exists but
// belongs to someone else is reported exactly like a missing row.
package store
