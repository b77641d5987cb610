package models

import "fmt"

// Location is a surf spot as registered in the spot registry. The core
// treats it as read-only reference data.
type Location struct {
	ID        string  `json:"id" dynamodbav:"id"`
	Name      string  `json:"name" dynamodbav:"name"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
}

func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("invalid longitude: %f", l.Longitude)
	}
	return nil
}
