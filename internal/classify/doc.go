// Package classify decides what a dropped file contains and parses it into a
// normalized record.
//
// Classification is filename-convention based and case-insensitive: .jpg
// files are camera frames, .json files beginning with the sensor prefix are
// inertial/servo/distance telemetry, the host-stats filenames are
// host-resource snapshots, and everything else is unrecognized. The
// detection tail log is parsed separately since only its newest row matters
// per tick.
//
// The package has no dependencies on the store or the filesystem; callers
// hand it bytes.
package classify
