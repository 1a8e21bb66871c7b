// Package loader resolves unit names to decoded descriptors beneath one output root.
//
// A Loader is opened once per scan and must be closed when the scan ends. It
// memoizes every resolution, so units referenced through "requires" are only
// read once no matter how many dependents name them.
//
// Loading never fails with an error. Each Load returns a LoadResult carrying
// either the decoded unit or a SkipReason explaining why the unit cannot be
// checked (missing descriptor, malformed content, unresolvable dependency, and
// so on). Callers decide whether a skip matters; the scanner treats all of them
// as "nothing to report".
package loader
