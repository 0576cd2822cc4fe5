package domain

import (
	"encoding/json"
	"strings"
)

type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"

	DefaultLength = LengthMedium
)

// LengthPreset holds the token bounds passed to the summarization model.
type LengthPreset struct {
	MaxLength int
	MinLength int
}

//nolint:gochecknoglobals // Fixed lookup table, never mutated.
var LengthPresets = map[Length]LengthPreset{
	LengthShort:  {MaxLength: 80, MinLength: 20},
	LengthMedium: {MaxLength: 150, MinLength: 30},
	LengthLong:   {MaxLength: 250, MinLength: 50},
}

// ResolveLength maps a requested length token to its preset.
// Unknown and empty tokens resolve to the medium preset.
func ResolveLength(token string) (Length, LengthPreset) {
	length := Length(strings.ToLower(strings.TrimSpace(token)))

	preset, ok := LengthPresets[length]
	if !ok {
		return DefaultLength, LengthPresets[DefaultLength]
	}

	return length, preset
}

type Request struct {
	URL    string `json:"url"`
	Length string `json:"length"`
}

// UnmarshalJSON keeps string fields only. A field of any other JSON type
// reads as empty, so a bad length does not cost the request its URL.
func (r *Request) UnmarshalJSON(data []byte) error {
	var fields struct {
		URL    any `json:"url"`
		Length any `json:"length"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.URL, _ = fields.URL.(string)
	r.Length, _ = fields.Length.(string)

	return nil
}

type Article struct {
	URL   string
	Title string
	Text  string
}

type Response struct {
	Summary string `json:"summary"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
