// Package escrutinio reconstructs structured ballot records from noisy OCR
// output of scanned E-14 electoral tally sheets. The OCR stream arrives as a
// flat list of text lines in which multi-column regions have been flattened,
// digits corrupted into symbols, and sub-blocks occasionally reordered; the
// parse pipeline recovers the tabular structure, assigns fields by keyword
// specificity, and flags values that need human audit.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., parse/, sqlite/,
// tesseract/, fs/).
package escrutinio
