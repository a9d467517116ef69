// Package ledger keeps a tamper-evident record of a game.
//
// Every event the combat controller emits becomes a block holding the
// SHA-256 hash of its predecessor, so editing any recorded play, attack or
// purchase breaks Verify. The chain can be written to disk as JSON and read
// back for replay or audit.
package ledger
