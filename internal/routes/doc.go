// Package routes maps navigation contexts to portal views. The route
// table mirrors the dashboard hierarchy: top-level routes keyed by
// workflow, children keyed by sub-menu, with a request-details override
// when a context carries a child ID.
package routes
