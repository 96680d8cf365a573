// Package services defines shared utilities consumed by the workflow runner
// and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation identifiers and the scanned
//     folder for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (abort vs skip vs report) consistent across components.
//
// Use these helpers when wiring new components so operational behaviour (error
// handling, observability) stays uniform across the tool.
package services
