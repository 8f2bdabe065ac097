package models

// Settings holds the app-level preferences persisted alongside the tracker
// data. Timezone is an IANA name ("Europe/Belgrade") or "Local".
type Settings struct {
	Timezone string `json:"timezone"`
}
