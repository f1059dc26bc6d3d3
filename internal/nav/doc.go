// Package nav tracks where a viewer is inside the portal and keeps that
// state consistent with a shareable location path.
//
// A Context is the tuple (module, workflow, subMenu, childID). Sessions
// move between four shapes: module select (no module), the module
// dashboard (workflow "home"), an active workflow, and a detail view
// (childID set).
//
// URL synchronization is deliberately split into two one-directional
// halves. Explicit state changes (Navigate, SelectModule) push an encoded
// location through the session's History sink; externally observed
// locations (back/forward, deep links) flow the other way through
// ApplyLocation, which never writes back. No single event ever travels
// both directions.
package nav
