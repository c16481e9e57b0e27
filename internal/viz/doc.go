// Package viz renders validation results in the terminal.
//
//   - [RenderReport]: styled table of the three checks with pass/fail status
//   - [RenderResultant]: resultant of a cylinder set with its minus-cylinder form
//   - [Histogram], [SweepChart]: asciigraph plots of error samples and sweeps
//   - [ProgressModel]: Bubble Tea view that runs an ensemble and shows
//     per-seed progress
//
// Colors come from the current [Theme]; "plain" disables them.
package viz
