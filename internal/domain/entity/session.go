package entity

// Session is the authenticated identity. Absence means unauthenticated;
// there is no partial login state.
type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Preferences is the durable client-side state restored on startup:
// the UI theme and the last-known business category, which selects the
// navigation variant without a round trip.
type Preferences struct {
	Theme            string `json:"theme" db:"theme"`
	BusinessCategory string `json:"business_category" db:"business_category"`
}
