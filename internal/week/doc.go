// Package week computes the weekly reference dates the registration statistics are
// published for.
//
// Statistics are snapshotted every Saturday. A series for a year starts at Jan 1 and
// continues with every following Saturday that is strictly before the time of the run.
package week
