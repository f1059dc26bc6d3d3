// Package module provides the catalogue of portal modules.
//
// A module is a top-level application area (logistics, personnel, ...)
// with a launchpad card (title, description, quick actions, stats) and
// its own independent menu tree. The Registry tracks registered modules,
// answers "is this module id known" for location decoding, and applies
// admin menu mutations by swapping the immutable tree under a lock.
//
// RegisterBuiltins seeds the five demo modules; persisted menu documents
// restored from the store override the seed trees at startup.
package module
