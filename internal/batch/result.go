// Package batch runs extraction and summarization over directories of
// documents. Documents are independent: failures are isolated per document
// and reported in the run result, never aborting the batch. Only an
// unreadable input directory or an unwritable output directory is fatal.
package batch

import "sort"

// Skip records one document that was not processed and why.
type Skip struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Result summarizes one batch run.
type Result struct {
	Processed []string `json:"processed"`
	Skipped   []Skip   `json:"skipped"`
}

// sorted normalizes the result ordering so parallel runs report
// deterministically.
func (r *Result) sorted() *Result {
	sort.Strings(r.Processed)
	sort.Slice(r.Skipped, func(i, j int) bool { return r.Skipped[i].File < r.Skipped[j].File })
	return r
}
