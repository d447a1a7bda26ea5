// Package models contains the persistence-facing data structures of the
// guidstore server.
package models

// Record is the stored entity: a GUID-keyed row with a mutable owner
// name and expiry. GUID is immutable once created.
type Record struct {
	GUID   string `json:"guid"`
	User   string `json:"user"`
	Expire int64  `json:"expire"` // Unix epoch seconds
}

// RecordPatch carries the mutable fields of a create/update request.
// Nil means the field was not supplied.
type RecordPatch struct {
	User   *string `json:"user"`
	Expire *int64  `json:"expire"`
}
