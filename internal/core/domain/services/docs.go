// Package services contains domain services for the meal-order core:
// operations that express business policy but do not belong to a single
// aggregate.
//
//   - OrderValidator checks shape and business constraints on an incoming
//     order request. It is pure: no I/O, deterministic for a given clock
//     reading, fail-fast with stable machine-readable codes.
//   - Authorizer decides whether an acting identity may place or manage
//     orders for a target student, consulting the student directory and the
//     staff access grant lookup through their ports.
package services
