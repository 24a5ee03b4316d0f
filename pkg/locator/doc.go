// Package locator finds the running host application instance the user is
// looking at and bridges to it.
//
// Several instances of the host may be running at once. The one chosen is
// the instance whose main window is nearest the top of the window stack,
// not the one most recently started. Stacking depth is the number of
// top-level windows above an instance's main window; depth 0 is frontmost.
//
// "No instance" is an expected outcome, so the lookup functions return a
// found flag instead of an error. Enumeration failures are logged and
// reported as not found.
//
// # Platforms
//
// [NewSystem] returns the operating system backend: process snapshots and
// window enumeration through golang.org/x/sys/windows on Windows, and a
// backend that finds nothing elsewhere. [Simulated] stands in for both the
// system and the bridge with in-process applications.
package locator
