package service

import (
	"regexp"
	"strings"

	"deeplink/internal/lookup/models"
)

// separatorRuns collapses repeated comma/whitespace runs left behind by the
// ingestion delimiters.
var separatorRuns = regexp.MustCompile(`[,\s]{2,}`)

// fieldSet is an order-preserving deduplicating accumulator for one field
// category. Equality is case-sensitive exact match after trimming;
// first-seen order is BFS discovery order, which keeps output deterministic.
type fieldSet struct {
	seen   map[string]struct{}
	values []string
}

func newFieldSet() *fieldSet {
	return &fieldSet{
		seen:   make(map[string]struct{}),
		values: []string{},
	}
}

// add records a value unless it is empty, a known ingestion placeholder, or
// already present.
func (f *fieldSet) add(value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "None" || trimmed == "N/A" {
		return
	}
	if _, ok := f.seen[trimmed]; ok {
		return
	}
	f.seen[trimmed] = struct{}{}
	f.values = append(f.values, trimmed)
}

// aggregate merges the accumulated traversal records into one consolidated
// profile: a single pass over the records in BFS order, one accumulator per
// field category.
func aggregate(records []models.Record) models.ConsolidatedProfile {
	phones := newFieldSet()
	names := newFieldSet()
	fatherNames := newFieldSet()
	emails := newFieldSet()
	addresses := newFieldSet()
	regions := newFieldSet()

	for _, r := range records {
		phones.add(r.Phone)
		phones.add(r.AltPhone)
		names.add(r.Name)
		fatherNames.add(r.FatherName)
		emails.add(r.Email)
		addresses.add(CanonicalAddress(r.Address))
		regions.add(r.Circle)
	}

	return models.ConsolidatedProfile{
		Phones:       phones.values,
		Names:        names.values,
		FatherNames:  fatherNames.values,
		Emails:       emails.values,
		Addresses:    addresses.values,
		Regions:      regions.values,
		TotalRecords: len(records),
		TotalPhones:  len(phones.values),
	}
}

// CanonicalAddress normalizes the raw delimited address form to a
// comma-separated one: '!' sentinels become ", ", separator runs collapse,
// and leading/trailing separators are trimmed. Two physically different raw
// strings representing the same logical address canonicalize identically,
// so deduplication happens on the canonical form.
func CanonicalAddress(raw string) string {
	addr := strings.TrimSpace(raw)
	if addr == "" || addr == "None" || addr == "N/A" {
		return ""
	}

	addr = strings.ReplaceAll(addr, "!!", ", ")
	addr = strings.ReplaceAll(addr, "!", ", ")
	addr = separatorRuns.ReplaceAllString(addr, ", ")
	addr = strings.Trim(addr, ", ")

	return addr
}
