package model

import "time"

type SoloRecord struct {
	Id          string    `json:"id" dynamodbav:"PK"`
	Key         string    `json:"key" dynamodbav:"Key"`
	Minor       bool      `json:"minor" dynamodbav:"Minor"`
	Progression []string  `json:"progression" dynamodbav:"Progression"`
	Path        string    `json:"path" dynamodbav:"Path"`
	NumNotes    int       `json:"num_notes" dynamodbav:"NumNotes"`
	Sample      string    `json:"sample" dynamodbav:"Sample"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"CreatedAt"`
}
