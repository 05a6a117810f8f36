package domain

// Preferences holds per-user dashboard settings.
type Preferences struct {
	DefaultPlatform string `json:"defaultPlatform"`
	AutoSave        bool   `json:"autoSave"`
	Notifications   bool   `json:"notifications"`
}

// DefaultPreferences is what callers see before anything is saved.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultPlatform: "",
		AutoSave:        true,
		Notifications:   true,
	}
}
