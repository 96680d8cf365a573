// Package preflight provides readiness checks for the filesystem paths and
// external tools that diptych depends on.
//
// These checks run in two contexts:
//   - The workflow runner calls CheckDirectoryAccess on the target folder
//     before fingerprinting, so an unreadable or read-only folder fails fast
//     instead of halfway through a large scan.
//   - The CLI "diptych config validate" command runs RunAll and renders every
//     check, including exiftool resolution, as a readiness report.
package preflight
