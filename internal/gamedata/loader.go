package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Load decodes one embedded data file. Unknown fields and trailing content
// are errors.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("decode %s: %w", filename, err)
	}
	if dec.More() {
		return result, fmt.Errorf("decode %s: unexpected data after top-level value", filename)
	}
	return result, nil
}
