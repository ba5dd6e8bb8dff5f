package model

type ProgressionEntryBody struct {
	Chord string `json:"chord"`
	Bars  int    `json:"bars"`
}

type KeyRequestBody struct {
	Progression []ProgressionEntryBody `json:"progression"`
	Extra       []string               `json:"extra,omitempty"`
	Key         string                 `json:"key,omitempty"`
}

type KeyResponse struct {
	Candidates []string `json:"candidates"`
	Key        string   `json:"key"`
	Minor      bool     `json:"minor"`
}

type SoloRequestBody struct {
	Sample      string                 `json:"sample"`
	Progression []ProgressionEntryBody `json:"progression"`
	Extra       []string               `json:"extra,omitempty"`
	Key         string                 `json:"key,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
