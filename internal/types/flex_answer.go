package types

import (
	"encoding/json"
	"strings"
)

// FlexAnswer is an answer value that can be unmarshaled from either a JSON
// string or a JSON array of strings. Checkbox questions submit arrays; the
// stored form is always a single comma-joined string.
type FlexAnswer string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexAnswer) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// If it starts with '[', treat it as a checkbox selection
	if data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*f = FlexAnswer(strings.Join(values, ","))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FlexAnswer(s)
	return nil
}

// String converts FlexAnswer back to the stored string form.
func (f FlexAnswer) String() string {
	return string(f)
}

// Values splits a comma-joined checkbox answer back into its selected values.
// An empty answer is an empty selection, not a one-element selection.
func (f FlexAnswer) Values() []string {
	if f == "" {
		return nil
	}
	return strings.Split(string(f), ",")
}
