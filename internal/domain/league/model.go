package league

// League mirrors one competition from the stats provider, keyed by the
// upstream numeric ID.
type League struct {
	ID        int64
	CountryID int64
	Name      string
	Type      string
	Logo      string
}

// Filter narrows league listings. Nil fields are ignored.
type Filter struct {
	CountryID *int64
	Name      *string
}
