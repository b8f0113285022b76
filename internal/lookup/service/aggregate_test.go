package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deeplink/internal/lookup/models"
)

func TestCanonicalAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "double and single sentinels",
			input:    "W/O Arun!!Rewa, MP!486340",
			expected: "W/O Arun, Rewa, MP, 486340",
		},
		{
			name:     "leading sentinel",
			input:    "!Near Temple!!Rewa",
			expected: "Near Temple, Rewa",
		},
		{
			name:     "trailing sentinels and spaces",
			input:    "Rewa MP!! ",
			expected: "Rewa MP",
		},
		{
			name:     "separator runs collapse",
			input:    "Ward 4,,  Rewa",
			expected: "Ward 4, Rewa",
		},
		{
			name:     "already canonical is unchanged",
			input:    "W/O Arun, Rewa, MP, 486340",
			expected: "W/O Arun, Rewa, MP, 486340",
		},
		{
			name:     "placeholder None",
			input:    "None",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalAddress(tt.input))
		})
	}
}

func TestCanonicalAddressDeduplicatesVariants(t *testing.T) {
	// Two physically different raw strings for the same logical address must
	// canonicalize identically so the aggregator collapses them.
	a := CanonicalAddress("W/O Arun!!Rewa, MP!486340")
	b := CanonicalAddress("W/O Arun, Rewa, MP, 486340")
	assert.Equal(t, a, b)
}

func TestAggregate(t *testing.T) {
	records := []models.Record{
		{
			Phone:      "9876543210",
			AltPhone:   "8817342793",
			Name:       "ARUN KUMAR",
			FatherName: "RAMESH KUMAR",
			Address:    "W/O Arun!!Rewa, MP!486340",
			Circle:     "MP",
			Email:      "arun@example.com",
		},
		{
			Phone:      "8817342793",
			AltPhone:   "7000419892",
			Name:       "ARUN KUMAR", // duplicate name across records
			FatherName: "None",       // ingestion placeholder
			Address:    "W/O Arun, Rewa, MP, 486340", // same logical address
			Circle:     "MP",
			Email:      "N/A",
		},
		{
			Phone:   "7000419892",
			Name:    "A KUMAR",
			Circle:  "Madhya Pradesh",
			Address: "",
		},
	}

	profile := aggregate(records)

	assert.Equal(t, []string{"9876543210", "8817342793", "7000419892"}, profile.Phones,
		"primary then alternate, BFS order, deduplicated")
	assert.Equal(t, []string{"ARUN KUMAR", "A KUMAR"}, profile.Names)
	assert.Equal(t, []string{"RAMESH KUMAR"}, profile.FatherNames)
	assert.Equal(t, []string{"arun@example.com"}, profile.Emails)
	assert.Equal(t, []string{"W/O Arun, Rewa, MP, 486340"}, profile.Addresses)
	assert.Equal(t, []string{"MP", "Madhya Pradesh"}, profile.Regions)
	assert.Equal(t, 3, profile.TotalRecords)
	assert.Equal(t, 3, profile.TotalPhones)
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := []models.Record{
		{Phone: "9876543210", AltPhone: "8817342793", Name: "ARUN", Address: "Rewa!!MP"},
		{Phone: "8817342793", Name: "ARUN", Address: "Rewa, MP"},
	}

	first := aggregate(records)
	second := aggregate(records)
	assert.Equal(t, first, second)
}

func TestAggregateEmptyInput(t *testing.T) {
	profile := aggregate(nil)

	assert.Empty(t, profile.Phones)
	assert.NotNil(t, profile.Phones, "lists must marshal as [] rather than null")
	assert.Zero(t, profile.TotalRecords)
	assert.Zero(t, profile.TotalPhones)
}
