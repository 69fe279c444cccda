package ai

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	notSpecified     = "Not specified"
	noNotesProvided  = "No notes provided"
	beginnerSkills   = "Beginner"
	topTechCompanies = "Top tech companies"
	emptyMentorList  = "[]"
	listSeparator    = ", "
	mentorListIndent = "  "
)

// Fields is the caller-supplied data object. Values stay raw so numbers keep
// their literal text and nested objects keep their key order.
type Fields map[string]json.RawMessage

// ParseFields decodes the request's data member. Absent or null data is an
// empty payload; anything other than a JSON object is rejected.
func ParseFields(raw json.RawMessage) (Fields, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Fields{}, nil
	}
	if trimmed[0] != '{' {
		return nil, MalformedRequest(nil)
	}
	var f Fields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, MalformedRequest(err)
	}
	if f == nil {
		f = Fields{}
	}
	return f, nil
}

// Text renders a scalar field, or fallback when it is missing or empty.
func (f Fields) Text(key, fallback string) string {
	raw, ok := f.lookup(key)
	if !ok {
		return fallback
	}
	s := renderValue(raw)
	if s == "" {
		return fallback
	}
	return s
}

// List renders a list field as its items. A bare scalar counts as a single
// item; missing or null yields nil.
func (f Fields) List(key string) []string {
	raw, ok := f.lookup(key)
	if !ok {
		return nil
	}
	if raw[0] != '[' {
		if s := renderValue(raw); s != "" {
			return []string{s}
		}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, renderValue(item))
	}
	return out
}

// Raw returns the field's JSON text re-indented with two spaces, preserving
// key order.
func (f Fields) Raw(key, fallback string) string {
	raw, ok := f.lookup(key)
	if !ok {
		return fallback
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", mentorListIndent); err != nil {
		return string(raw)
	}
	return buf.String()
}

func (f Fields) lookup(key string) (json.RawMessage, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

func renderValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return string(raw)
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, renderValue(item))
		}
		return strings.Join(parts, listSeparator)
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw)
		}
		return buf.String()
	case 'n':
		return ""
	default:
		// numbers and booleans keep their literal text
		return string(raw)
	}
}

func joinOr(items []string, fallback string) string {
	s := strings.Join(items, listSeparator)
	if s == "" {
		return fallback
	}
	return s
}

// Payload is one task type's typed view of Fields.
type Payload interface {
	UserPrompt() string
}

type DoubtAnswer struct {
	Title       string
	Description string
	Category    string
}

func decodeDoubtAnswer(f Fields) Payload {
	return DoubtAnswer{
		Title:       f.Text("title", notSpecified),
		Description: f.Text("description", notSpecified),
		Category:    f.Text("category", notSpecified),
	}
}

type MentorMatch struct {
	StudentSkills    []string
	StudentInterests []string
	CareerGoals      string
	Branch           string
	Year             string
	// Mentors is the caller's mentor list as indented JSON, passed through verbatim.
	Mentors string
}

func decodeMentorMatch(f Fields) Payload {
	return MentorMatch{
		StudentSkills:    f.List("studentSkills"),
		StudentInterests: f.List("studentInterests"),
		CareerGoals:      f.Text("careerGoals", notSpecified),
		Branch:           f.Text("branch", notSpecified),
		Year:             f.Text("year", notSpecified),
		Mentors:          f.Raw("mentors", emptyMentorList),
	}
}

type SessionSummary struct {
	MentorName  string
	StudentName string
	Topic       string
	Duration    string
	Notes       string
	Date        string
}

func decodeSessionSummary(f Fields) Payload {
	return SessionSummary{
		MentorName:  f.Text("mentorName", notSpecified),
		StudentName: f.Text("studentName", notSpecified),
		Topic:       f.Text("topic", notSpecified),
		Duration:    f.Text("duration", notSpecified),
		Notes:       f.Text("notes", noNotesProvided),
		Date:        f.Text("date", notSpecified),
	}
}

type CareerRoadmap struct {
	Year            string
	Branch          string
	Skills          []string
	CareerGoal      string
	TargetCompanies []string
}

func decodeCareerRoadmap(f Fields) Payload {
	return CareerRoadmap{
		Year:            f.Text("year", notSpecified),
		Branch:          f.Text("branch", notSpecified),
		Skills:          f.List("skills"),
		CareerGoal:      f.Text("careerGoal", notSpecified),
		TargetCompanies: f.List("targetCompanies"),
	}
}

type ContentModeration struct {
	Content string
	Title   string
}

func decodeContentModeration(f Fields) Payload {
	return ContentModeration{
		Content: f.Text("content", notSpecified),
		Title:   f.Text("title", ""),
	}
}

type CertificateText struct {
	Name        string
	Role        string
	Achievement string
	Hours       string
	Skills      []string
	Rating      string
}

func decodeCertificateText(f Fields) Payload {
	return CertificateText{
		Name:        f.Text("name", notSpecified),
		Role:        f.Text("role", notSpecified),
		Achievement: f.Text("achievement", notSpecified),
		Hours:       f.Text("hours", notSpecified),
		Skills:      f.List("skills"),
		Rating:      f.Text("rating", notSpecified),
	}
}

