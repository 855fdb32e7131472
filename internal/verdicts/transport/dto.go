// Package transport defines request/response DTOs for the verdicts module.
package transport

// LookupStatus values returned by a domain lookup.
const (
	StatusReal       = "real"
	StatusFake       = "fake"
	StatusNotFound   = "not_found"
	StatusInvalidURL = "invalid_url"
)

// LookupResponse is the result of a domain credibility lookup.
type LookupResponse struct {
	Domain  string `json:"domain"`
	Verdict string `json:"verdict"`
	Source  string `json:"source,omitempty"`
}

// SeedEntry is one row of the curated YAML seed list.
type SeedEntry struct {
	Domain  string `yaml:"domain" validate:"required,fqdn"`
	Verdict string `yaml:"verdict" validate:"required,oneof=real fake"`
	Source  string `yaml:"source"`
}

// SeedFile is the top-level YAML document for verdict seeding.
type SeedFile struct {
	Verdicts []SeedEntry `yaml:"verdicts"`
}

// SeedResponse reports the outcome of a bulk seed.
type SeedResponse struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}
