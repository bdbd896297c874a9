// Package analysis turns a propagated network into a report: which
// materials every belt and inserter is expected to carry, where flows start
// and end, and what the machines consume and produce per craft.
package analysis
