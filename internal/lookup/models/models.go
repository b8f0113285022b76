// Package models defines the record and response shapes for the lookup
// domain.
package models

// Record is one row of the backing dataset. Records are immutable and
// read-only from the engine's perspective; lifecycle is owned by the
// external ingestion process.
type Record struct {
	// Phone is the primary identifier: a fixed-length 10-digit mobile
	// number. The dataset permits duplicate primaries.
	Phone string
	// AltPhone is the alternate identifier forming a directed edge to other
	// records. May be empty, may carry a stale prefix, may dangle or
	// self-reference.
	AltPhone   string
	Name       string
	FatherName string
	// Address is the raw delimited form from ingestion; repeated '!'
	// sentinels separate components.
	Address string
	// Circle is the telecom region/carrier tag.
	Circle string
	Email  string
}

// ContentKey identifies a record for deduplication across the two index
// directions. Two rows with the same key are the same logical record.
func (r Record) ContentKey() string {
	return r.Phone + "\x1f" + r.Name + "\x1f" + r.FatherName + "\x1f" + r.Address
}

// ConsolidatedProfile is the aggregation result of one traversal: ordered
// deduplicated field sets in BFS discovery order. Immutable after assembly.
type ConsolidatedProfile struct {
	Phones       []string
	Names        []string
	FatherNames  []string
	Emails       []string
	Addresses    []string
	Regions      []string
	TotalRecords int
	TotalPhones  int
}

// LookupResult is the externally-visible response shape.
type LookupResult struct {
	Query          string   `json:"query"`
	Found          bool     `json:"found"`
	TotalRecords   int      `json:"total_records"`
	TotalPhones    int      `json:"total_phones"`
	Phones         []string `json:"phones"`
	Names          []string `json:"names"`
	FatherNames    []string `json:"father_names"`
	Emails         []string `json:"emails"`
	Addresses      []string `json:"addresses"`
	Regions        []string `json:"regions"`
	ResponseTimeMS int64    `json:"response_time_ms"`
}

// StoreStats backs the /api/stats endpoint.
type StoreStats struct {
	TotalRecords int64  `json:"total_records"`
	Engine       string `json:"engine"`
}
