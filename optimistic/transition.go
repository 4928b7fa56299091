// Package optimistic applies a tentative state before a backend call
// confirms it, and restores the exact prior snapshot when the call fails.
package optimistic

import "context"

// Transition remembers the state before an optimistic change together with
// the tentative state shown while the request is outstanding.
type Transition[S any] struct {
	prev      S
	tentative S
}

// Begin records current and derives the tentative state from it.
func Begin[S any](current S, apply func(S) S) Transition[S] {
	return Transition[S]{prev: current, tentative: apply(current)}
}

// Previous is the snapshot taken before the change.
func (t Transition[S]) Previous() S { return t.prev }

// Tentative is the state to show until the request settles.
func (t Transition[S]) Tentative() S { return t.tentative }

// Commit returns the confirmed state. reconcile may fold server-provided
// data into the tentative state; nil keeps it as is.
func (t Transition[S]) Commit(reconcile func(S) S) S {
	if reconcile == nil {
		return t.tentative
	}
	return reconcile(t.tentative)
}

// Rollback returns the snapshot taken by Begin.
func (t Transition[S]) Rollback() S { return t.prev }

// Run applies, attempts and then commits or rolls back in one call, for
// callers that can block on the request.
func Run[S any](ctx context.Context, current S, apply func(S) S, attempt func(context.Context, Transition[S]) (func(S) S, error)) (S, error) {
	t := Begin(current, apply)
	reconcile, err := attempt(ctx, t)
	if err != nil {
		return t.Rollback(), err
	}
	return t.Commit(reconcile), nil
}
