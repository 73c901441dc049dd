package sources

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes a JSON value that providers serve inconsistently as a
// string or a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexString(strconv.FormatInt(int64(n), 10))
		return nil
	}
	// Tolerate any other scalar by keeping its raw text.
	*f = FlexString(strings.Trim(s, `"`))
	return nil
}

func (f FlexString) String() string { return string(f) }

// Usable reports whether the value is a meaningful identifier. Providers
// serialize absent fields as "undefined" or "null" often enough that those
// literals must be treated as missing.
func (f FlexString) Usable() bool {
	s := strings.TrimSpace(string(f))
	return s != "" && !strings.EqualFold(s, "undefined") && !strings.EqualFold(s, "null")
}
