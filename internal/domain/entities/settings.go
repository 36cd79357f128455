package entities

// Settings stores client preferences.
type Settings struct {
	DarkMode bool
}
