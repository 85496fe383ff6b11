package vcf

import (
	"fmt"
	"strings"
)

// LogicOp combines the requested tags: a contact must carry all of them
// (AND) or at least one (OR).
type LogicOp string

const (
	LogicAnd LogicOp = "and"
	LogicOr  LogicOp = "or"
)

// ParseLogicOp accepts the word forms and the original symbol forms.
func ParseLogicOp(s string) (LogicOp, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and", "&":
		return LogicAnd, nil
	case "or", "|", "":
		return LogicOr, nil
	default:
		return "", fmt.Errorf("invalid logic operator %q (want \"and\" or \"or\")", s)
	}
}

// Filter is the tag-based inclusion predicate. An empty tag set disables
// filtering entirely.
type Filter struct {
	Tags []string
	Op   LogicOp
}

// Empty reports whether the filter accepts everything.
func (f Filter) Empty() bool {
	return len(f.Tags) == 0
}

// Accepts evaluates the predicate against the contact's comma-separated
// tags field. Matching is exact: case-sensitive, no trimming.
func (f Filter) Accepts(contact *Contact, tagsFieldName string) bool {
	if f.Empty() {
		return true
	}
	raw, ok := contact.Get(tagsFieldName)
	if !ok {
		return false
	}
	present := strings.Split(raw, ",")

	if f.Op == LogicAnd {
		for _, tag := range f.Tags {
			if !containsTag(present, tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range f.Tags {
		if containsTag(present, tag) {
			return true
		}
	}
	return false
}

func containsTag(present []string, tag string) bool {
	for _, p := range present {
		if p == tag {
			return true
		}
	}
	return false
}
