// SPDX-License-Identifier: MIT

// Package mask resolves which graph paths take part in a coverage run and
// how they are grouped.
//
// A GraphMask is built once per run, either from parsed inputs (New with a
// Settings) or from files (FromParams with BED subset/exclude files, a group
// file and an optional group order file; gzip-compressed files are read
// transparently). It provides:
//
//   - a path→group assignment with consecutive group ids,
//   - PathOrder: the canonical traversal order, sorted by group id and then
//     by path name, which coverage construction depends on,
//   - per-path include and exclude coordinate ranges (half-open, path-local).
//
// All configuration failures wrap ErrConfig together with a precise sentinel
// (ErrUnknownPath, ErrMalformedBED, ...), so callers can match either with
// errors.Is. They are fatal for the run.
package mask
