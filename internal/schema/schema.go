// Package schema provides the principal schematics for all other packages. It
// defines the contract constants of the filesystem, the descriptor kinds and
// access modes, and the plain data structures (stat results, directory
// entries, snapshots) that are handed out by the filesystem core and consumed
// by the validation, io and ui layers.
package schema
