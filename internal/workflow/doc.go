// Package workflow orchestrates a diptych run end to end: list the images in
// a folder, fingerprint them, match near-duplicate pairs, and merge each
// pair's keyword fields through exiftool.
//
// Run performs the full merge workflow under a lock file so concurrent runs
// cannot write to the same images. Scan is the read-only half: it reports
// fingerprints and matched pairs without touching any metadata.
package workflow
