// Package diraudit audits doctors' self-reported contact details against
// the profiles that third-party medical directories publish about them.
// It searches each configured directory for every doctor on a roster,
// extracts the directory's profile fields and scores how well each field
// matches the roster.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package diraudit
