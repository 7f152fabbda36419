// Package role holds the role catalog and the role assigner.
package role

// Team: which side a role wins with.
type Team string

const (
	TeamCrew     Team = "crew"
	TeamSaboteur Team = "saboteur"
)

// Role names as stored in game state.
const (
	NameCrewMember      = "Crew Member"
	NameSaboteur        = "Saboteur"
	NameSecurityOfficer = "Security Officer"
	NameEngineer        = "Engineer"
)

// Info: one catalog entry. A flat data table; abilities are data, not
// behavior.
type Info struct {
	Name        string
	Team        Team
	Description string
	Emoji       string
	Color       int
	Special     string // night ability keyword, empty for plain roles
}

var catalog = map[string]Info{
	NameCrewMember: {
		Name:        NameCrewMember,
		Team:        TeamCrew,
		Description: "Keep the station running and vote out the saboteurs.",
		Emoji:       "👨‍🚀",
		Color:       0x3498db,
	},
	NameSaboteur: {
		Name:        NameSaboteur,
		Team:        TeamSaboteur,
		Description: "Sabotage the mission without getting caught.",
		Emoji:       "🔪",
		Color:       0xe74c3c,
	},
	NameSecurityOfficer: {
		Name:        NameSecurityOfficer,
		Team:        TeamCrew,
		Description: "Investigate one crew member each night. (coming soon)",
		Emoji:       "🔍",
		Color:       0x3498db,
		Special:     "investigate",
	},
	NameEngineer: {
		Name:        NameEngineer,
		Team:        TeamCrew,
		Description: "Protect one crew member each night. (coming soon)",
		Emoji:       "🛡️",
		Color:       0x3498db,
		Special:     "protect",
	},
}

// Lookup returns the catalog entry for a role name.
// Unknown names resolve to Crew Member.
func Lookup(name string) Info {
	if info, ok := catalog[name]; ok {
		return info
	}
	return catalog[NameCrewMember]
}

// TeamOf returns the team of a role name, with the Crew Member fallback.
func TeamOf(name string) Team {
	return Lookup(name).Team
}

// IsSaboteur reports whether the role name belongs to the saboteur team.
func IsSaboteur(name string) bool {
	return TeamOf(name) == TeamSaboteur
}

// All returns the catalog entries in a stable order.
func All() []Info {
	return []Info{
		catalog[NameCrewMember],
		catalog[NameSaboteur],
		catalog[NameSecurityOfficer],
		catalog[NameEngineer],
	}
}
