// Package timeline projects an entity's sparse, append-only log onto a fixed
// ordered list of expected lifecycle steps. Each expected step is marked done
// when a matching log entry exists, carrying that entry's timestamp; steps
// with no entry stay pending. The projection is display-only and never drives
// a transition.
package timeline

import "time"

// Step is one expected lifecycle step, identified by the action code its log
// entry would carry.
type Step struct {
	Code  string
	Label string
}

// Event is one actual log entry (activity log or status history row).
type Event struct {
	Code      string
	Note      string
	Timestamp time.Time
}

// Entry is one projected timeline row.
type Entry struct {
	Code      string     `json:"code"`
	Label     string     `json:"label"`
	Done      bool       `json:"done"`
	Note      string     `json:"note,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Project maps events onto the expected steps in order. When a code appears
// more than once in the log, the first occurrence wins.
func Project(expected []Step, events []Event) []Entry {
	byCode := make(map[string]Event, len(events))
	for _, ev := range events {
		if _, seen := byCode[ev.Code]; !seen {
			byCode[ev.Code] = ev
		}
	}

	entries := make([]Entry, 0, len(expected))
	for _, step := range expected {
		entry := Entry{Code: step.Code, Label: step.Label}
		if ev, ok := byCode[step.Code]; ok {
			ts := ev.Timestamp
			entry.Done = true
			entry.Note = ev.Note
			entry.Timestamp = &ts
		}
		entries = append(entries, entry)
	}
	return entries
}

// DonationSteps is the expected step list for the scrap-donation pipeline.
// Terminal branches (rejected, cancelled) are not part of the happy path and
// appear in the raw log instead.
var DonationSteps = []Step{
	{Code: "created", Label: "Request placed"},
	{Code: "assigned", Label: "Dealer assigned"},
	{Code: "picked-up", Label: "Scrap picked up"},
	{Code: "donated", Label: "Donated"},
	{Code: "processed", Label: "Processed"},
	{Code: "recycled", Label: "Recycled"},
}

// GaudaanSteps is the expected step list for the animal-donation pipeline.
var GaudaanSteps = []Step{
	{Code: "unassigned", Label: "Request placed"},
	{Code: "assigned", Label: "Volunteer assigned"},
	{Code: "picked_up", Label: "Animal picked up"},
	{Code: "shelter", Label: "Reached shelter"},
	{Code: "dropped", Label: "Handed over"},
}
