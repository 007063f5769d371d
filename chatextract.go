// Package chatextract extracts conversational message sequences from
// AI chat "share" pages. Page structure is not under our control, so
// extraction runs as an ordered set of strategies (embedded JSON, DOM
// heuristics, plain-text segmentation), each paired with its own
// confidence estimator, degrading gracefully instead of failing
// outright.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package chatextract
