// Package collection names the MongoDB collections shared between modules.
package collection

const (
	TeamMembers = "team_members"
	Projects    = "projects"
)
