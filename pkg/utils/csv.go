package utils

import "strings"

// CleanHeaders trims whitespace, surrounding quotes and a UTF-8 BOM from
// exported CSV header cells. Billing exports are inconsistent about all three.
func CleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\uFEFF")
		h = strings.TrimSpace(h)
		h = strings.Trim(h, `"`)
		cleaned[i] = h
	}
	return cleaned
}

// RecordToMap pairs a CSV record's values with cleaned header names.
// Records shorter than the header set yield empty values for the missing
// columns; extra values beyond the headers are dropped.
func RecordToMap(headers, values []string) map[string]string {
	rec := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(values) {
			rec[h] = values[i]
		} else {
			rec[h] = ""
		}
	}
	return rec
}
