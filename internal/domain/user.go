package domain

import "time"

// User represents a registered user of the bank. Registration, login and
// credential handling live outside this service; the transfer core only
// ever needs to know whether a user exists and which accounts they own.
type User struct {
	ID           int64
	Name         string
	Email        string
	RegisteredAt time.Time
}
