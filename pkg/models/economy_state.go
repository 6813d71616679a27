package models

// EconomyState holds the player's balances. Coins grow without bound, keys
// floor at zero, battery stays within 0..100.
type EconomyState struct {
	Coins   int `json:"coins" db:"coins"`
	Keys    int `json:"keys" db:"keys"`
	Battery int `json:"battery" db:"battery"`
}
