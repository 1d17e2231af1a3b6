package chatmodel

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// String is a ContentProvider over a plain string,
// for assistants that return free-form text.
type String string

func NewString(s string) *String {
	v := String(s)
	return &v
}

func (s String) GetContent() string {
	return string(s)
}

func (s String) String() string {
	return string(s)
}

func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *String) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// accept raw text that is not quoted JSON
		*s = String(strings.Trim(string(data), "\""))
		return nil
	}
	*s = String(str)
	return nil
}

func (s String) MarshalYAML() (any, error) {
	return string(s), nil
}

func (s *String) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	*s = String(str)
	return nil
}
