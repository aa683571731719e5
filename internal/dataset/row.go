package dataset

import "dtrobust/internal/schema"

// Row is one training example: a feature vector and its class label,
// mirroring original_source's CSVRow{x, y}.
type Row struct {
	X schema.Vector
	Y string
}

// Dataset is the fixed, read-only (schema, rows) pair every T# is built
// against. Rows are shared by reference across every abstract training set
// derived from it; dtrobust never copies them.
type Dataset struct {
	Schema schema.Schema
	Rows   []Row
}

// ClassOf returns the label of row i.
func (d Dataset) ClassOf(i int) string { return d.Rows[i].Y }

// VectorOf returns the feature vector of row i.
func (d Dataset) VectorOf(i int) schema.Vector { return d.Rows[i].X }
