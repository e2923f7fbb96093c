package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const jobsSearchPrefix = "jobs:search:"

type jobSearchCacheKeyInput struct {
	Query    string `json:"query"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// Query text matches case-insensitively, so its key is folded; company and location
// match exactly and keep their case.
func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func JobsSearchCacheKey(params JobSearchParams) string {
	in := jobSearchCacheKeyInput{
		Query:    normalizeSearchValue(params.Query),
		Company:  strings.TrimSpace(params.Company),
		Location: strings.TrimSpace(params.Location),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobsSearchPrefix + hex.EncodeToString(sum[:])
}
