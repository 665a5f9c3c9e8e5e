// Package normalize turns free-form provider replies into typed records.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNoJSON    = errors.New("no JSON found in reply")
	ErrMalformed = errors.New("malformed JSON in reply")
)

var (
	fenceOpen  = regexp.MustCompile("^\\s*```[A-Za-z0-9_-]*[ \\t]*\\r?\\n?")
	fenceClose = regexp.MustCompile("\\r?\\n?```\\s*$")
	arrayRe    = regexp.MustCompile(`\[[\s\S]*\]`)
	objectRe   = regexp.MustCompile(`\{[\s\S]*\}`)
)

// StripFences removes a leading and trailing Markdown code fence, if present.
func StripFences(s string) string {
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractArray returns the outermost JSON array embedded in text.
func ExtractArray(text string) ([]json.RawMessage, error) {
	m := arrayRe.FindString(StripFences(text))
	if m == "" {
		return nil, ErrNoJSON
	}
	var out []json.RawMessage
	if err := json.Unmarshal([]byte(m), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

// ExtractObject returns the outermost JSON object embedded in text.
func ExtractObject(text string) (json.RawMessage, error) {
	m := objectRe.FindString(StripFences(text))
	if m == "" {
		return nil, ErrNoJSON
	}
	if !json.Valid([]byte(m)) {
		return nil, ErrMalformed
	}
	return json.RawMessage(m), nil
}

// text accepts a JSON string, number or structured value. Structured values
// are kept as indented JSON so nested plans survive as readable text.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = text(strings.TrimSpace(s))
		return nil
	}
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case []any:
		lines := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				lines = append(lines, s)
				continue
			}
			enc, _ := json.Marshal(item)
			lines = append(lines, string(enc))
		}
		*t = text(strings.Join(lines, "\n"))
	case float64, bool:
		*t = text(strings.TrimSpace(string(b)))
	default:
		enc, _ := json.MarshalIndent(v, "", "  ")
		*t = text(enc)
	}
	return nil
}

// list accepts an array of strings or objects, or a comma separated string.
// Objects contribute their "url" (or "title") field.
type list []string

func (l *list) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*l = out
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		if string(b) == "null" {
			*l = nil
			return nil
		}
		return err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var str string
		if json.Unmarshal(r, &str) == nil {
			if str = strings.TrimSpace(str); str != "" {
				out = append(out, str)
			}
			continue
		}
		var obj struct {
			URL   string `json:"url"`
			Link  string `json:"link"`
			Title string `json:"title"`
		}
		if json.Unmarshal(r, &obj) == nil {
			switch {
			case obj.URL != "":
				out = append(out, obj.URL)
			case obj.Link != "":
				out = append(out, obj.Link)
			case obj.Title != "":
				out = append(out, obj.Title)
			}
		}
	}
	*l = out
	return nil
}

// number accepts 4, 4.5 or "4.5".
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var v float64
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &v); err == nil {
			*n = number(v)
		}
		return nil
	}
	*n = 0
	return nil
}

// flag accepts true, "true", "yes" or "free".
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flag(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "free":
			*f = true
		default:
			*f = false
		}
	}
	return nil
}
