package entities

// Session identifies the person using the client.
// It only tags ranking rows and exports; progress does not depend on it.
type Session struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	Demo       bool   `json:"demo,omitempty"` // created offline, unknown to the server
}

// Anonymous returns a logged-out session.
func Anonymous() Session {
	return Session{}
}
