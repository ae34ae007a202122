// Package ingest pulls postings from the external feed and inserts the ones
// worth keeping as jobs.
package ingest

import "strings"

// defaultBlocklist is always applied; INGEST_BLOCKLIST terms are added on top.
var defaultBlocklist = []string{
	"mlm",
	"pyramid scheme",
	"commission only",
	"unpaid",
}

// ContainsBlockedTerm returns true if any blocklist term appears
// (case-insensitive) anywhere in the combined title + company text.
//
// Called before every insert: if true, the posting is silently discarded.
func ContainsBlockedTerm(title, company string, blocklist []string) bool {
	if len(blocklist) == 0 {
		return false
	}
	combined := strings.ToLower(title + " " + company)
	for _, term := range blocklist {
		if term == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
