package models

// Activity is the last recorded request of a user, kept in redis.
type Activity struct {
	LastActivity string `json:"last_activity"`
	UserAgent    string `json:"user_agent"`
	IPAddress    string `json:"ip_address"`
}
