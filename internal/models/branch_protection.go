package models

import "time"

// BranchProtectionStatus represents one row of the default-branch protection
// report: the protection flag of a repository branch at a snapshot date, with
// the owning org, repo and branch recovered from the snapshot URL.
type BranchProtectionStatus struct {
	Name      string    `json:"name"`
	Protected bool      `json:"protected"`
	URL       string    `json:"url"`
	Org       string    `json:"org"`
	Repo      string    `json:"repo"`
	Branch    string    `json:"branch"`
	Date      time.Time `json:"date"`
}
