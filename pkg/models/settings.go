package models

// AppSettings holds the preferences managed by the settings screen
type AppSettings struct {
	Notifications bool    `json:"notifications"`
	DarkMode      bool    `json:"darkMode"`
	AudioEnabled  bool    `json:"audioEnabled"`
	AutoScan      bool    `json:"autoScan"`
	Language      string  `json:"language"`
	PlaybackSpeed float64 `json:"playbackSpeed"`
}

// DefaultSettings returns the settings applied before the user changes anything
func DefaultSettings() AppSettings {
	return AppSettings{
		Notifications: true,
		DarkMode:      false,
		AudioEnabled:  true,
		AutoScan:      false,
		Language:      "fr",
		PlaybackSpeed: 1.0,
	}
}
