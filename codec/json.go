package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// Byte slices encode as base64 strings, which keeps the snapshot file
// table portable at the cost of some size; the payload is compressed
// downstream anyway.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// NOTE: this affects newly-created snapshots only; existing snapshots are
// self-describing and select their codec by the name in the header.
var Default Codec = JSON{}
