// Package portal exposes the dashboard's JSON API: login and session
// tokens, module and menu queries filtered per viewer, per-user
// navigation sessions, workflow requests, and the admin surface for
// users, menu editing, workflow kill-switches, and the audit log.
//
// The portal keeps one navigation session per authenticated user, expired
// after an hour of inactivity. Menu edits go through the module registry
// and are persisted back to the store as whole-tree documents.
package portal
