// Package pagination provides page-window and pagination metadata helpers
// shared by the interactive browser and the one-shot list command.
//
// This package contains:
//   - Window/Pages: the bounded sliding window of page numbers shown in the footer
//   - Meta: response metadata derived from the API's page info
//   - ValidatePage: CLI flag validation for 1-based page numbers
package pagination
