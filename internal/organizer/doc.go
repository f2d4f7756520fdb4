// Package organizer sorts a flat directory of numbered episode files into
// per-title folders.
//
// A run lists the regular *.mp4 files directly inside the target, extracts
// the title between 《 and 》 from names shaped like "12 - 《Title》notes.mp4",
// ensures <target>/<Title> exists, picks a destination name that never
// replaces an existing file (name.mp4, name_1.mp4, name_2.mp4, ...), and moves
// the file there. Every eligible file yields exactly one Outcome; only an
// unusable target aborts the run. Subdirectories are never read or modified,
// so organizing an already organized directory is a no-op.
package organizer
