// Package watch re-runs a full scan whenever the compiled output changes.
//
// Each trigger is a complete re-scan; nothing is cached between runs. Output
// directories that do not exist yet are picked up when the build creates them,
// and new subdirectories are watched as they appear.
//
// Rapid bursts of events, such as a compiler writing hundreds of descriptors,
// are collapsed into a single run after the debounce interval.
package watch
