package internal

import (
	"time"
)

// Config holds the runtime configuration for a scan run.
type Config struct {
	InputPath string
	Passwords []string
	DB        *DB
}

// InspectResult holds the identification details for one object found
// in a file.
type InspectResult struct {
	Type        string `json:"type" yaml:"type"`
	Algorithm   string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Standard    string `json:"standard,omitempty" yaml:"standard,omitempty"`
	Visibility  string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	PEMTag      string `json:"pem_tag,omitempty" yaml:"pem_tag,omitempty"`
	BitLength   int    `json:"bit_length,omitempty" yaml:"bit_length,omitempty"`
	Curve       string `json:"curve,omitempty" yaml:"curve,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
}

// KeyRecord encodes a classified key and its metadata for the catalog.
type KeyRecord struct {
	Fingerprint string    `db:"fingerprint"`
	KeyType     string    `db:"key_type"`
	Algorithm   string    `db:"algorithm"`
	Standard    string    `db:"standard"`
	PEMTag      string    `db:"pem_tag"`
	BitLength   int       `db:"bit_length"`
	Curve       string    `db:"curve"`
	PEM         string    `db:"pem"`
	Source      string    `db:"source"`
	FirstSeen   time.Time `db:"first_seen"`
}
