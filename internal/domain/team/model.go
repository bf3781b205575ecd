package team

// Team mirrors one club from the stats provider, keyed by the upstream
// numeric ID. LeagueID reflects the league the team was last synced under.
type Team struct {
	ID       int64
	LeagueID int64
	Name     string
	Code     string
	Country  string
	Logo     string
	Founded  *int
	Venue    string
}
