// Package render runs the animated contour background.
//
// A [Renderer] is mounted once on a [Host]. Mounting registers a resize listener
// and requests a frame from the host's [Scheduler]; every callback requests the
// next one, so a slow frame never overlaps the following one. Callbacks arriving
// sooner than 1/TargetFPS after the last drawn frame are skipped without touching
// the animation clock. Unmount cancels the pending callback and removes the
// listener; a stopped renderer stays stopped.
//
// [ManualScheduler] drives frames from an explicit clock (tests, offline export),
// [TickerScheduler] from the wall clock, and [Window] stands in for a resizable
// viewport.
package render
