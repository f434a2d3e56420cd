// Package pressdoc ingests Korean press-release documents (board web pages
// and HWP files), extracts structured body text and tables, and stores the
// results for downstream consumers.
//
// This package contains domain types, the pure table-grid and sentence
// algorithms, and interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, minio/).
package pressdoc
