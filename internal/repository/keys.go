package repository

// Storage keys shared by every backend. Progress keys come from Subject.StorageKey.
const (
	keyUserID     = "userId"
	keyUsername   = "username"
	keyUserEmail  = "userEmail"
	keyIsLoggedIn = "isLoggedIn"
	keyDarkMode   = "darkMode"
)
