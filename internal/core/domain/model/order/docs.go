// Package order contains the Order aggregate and its lifecycle rules.
//
// An Order is a single meal purchase request for one student on one delivery
// date. It is created once, atomically, with all of its items; afterwards it
// is mutated only through status transitions and a bounded set of editable
// fields while still pending. Orders are never physically deleted;
// cancellation is a status, not a row removal.
//
// Item prices are snapshots: the menu catalog's price at creation time is
// copied into each item and the order total is the sum of the line totals.
// Later catalog price changes never affect existing orders.
//
// The status state machine is a set of pure functions on Status; persisting a
// transition is the repository's responsibility and is conditioned on the
// row's current status still matching what the machine evaluated.
package order
