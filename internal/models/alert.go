package models

import "time"

// AlertRule is a user-defined trigger owned by the surrounding application.
// The engine only reads it and writes back LastTriggeredAt and
// NotificationsSentCount after a fire.
type AlertRule struct {
	ID                      string     `json:"id" dynamodbav:"id"`
	OwnerID                 string     `json:"ownerId" dynamodbav:"ownerId"`
	LocationID              string     `json:"locationId" dynamodbav:"locationId"`
	MinWaveHeight           float64    `json:"minWaveHeight" dynamodbav:"minWaveHeight"`
	MaxWaveHeight           float64    `json:"maxWaveHeight" dynamodbav:"maxWaveHeight"`
	MinWindSpeed            float64    `json:"minWindSpeed" dynamodbav:"minWindSpeed"`
	MaxWindSpeed            float64    `json:"maxWindSpeed" dynamodbav:"maxWindSpeed"`
	PreferredWindDirections []string   `json:"preferredWindDirections,omitempty" dynamodbav:"preferredWindDirections,omitempty"`
	Enabled                 bool       `json:"enabled" dynamodbav:"enabled"`
	LastTriggeredAt         *time.Time `json:"lastTriggeredAt,omitempty" dynamodbav:"lastTriggeredAt,omitempty,unixtime"`
	NotificationsSentCount  int        `json:"notificationsSentCount" dynamodbav:"notificationsSentCount"`
}

// PrefersWindDirection reports whether dir satisfies the rule's wind
// direction preference. An empty preference list matches any direction.
func (r AlertRule) PrefersWindDirection(dir string) bool {
	if len(r.PreferredWindDirections) == 0 {
		return true
	}
	for _, d := range r.PreferredWindDirections {
		if d == dir {
			return true
		}
	}
	return false
}
