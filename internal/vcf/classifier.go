package vcf

import "strings"

// LineKind is the single category assigned to a physical input line.
type LineKind int

const (
	LineIgnored LineKind = iota
	LineRecordStart
	LineRecordEnd
	LineStandardField
	LineCustomField
	LineSocialField
	LineContinuation
)

func (k LineKind) String() string {
	switch k {
	case LineRecordStart:
		return "record-start"
	case LineRecordEnd:
		return "record-end"
	case LineStandardField:
		return "standard-field"
	case LineCustomField:
		return "custom-field"
	case LineSocialField:
		return "social-field"
	case LineContinuation:
		return "continuation"
	default:
		return "ignored"
	}
}

const (
	recordStartMarker = "N:"
	recordEndMarker   = "END:"

	customSentinel       = "X-CUSTOM"
	customValueSeparator = "-=+=-"

	socialSentinel  = "X-SOCIALPROFILE"
	socialTypeParam = "TYPE="
)

// Classify assigns exactly one LineKind to a physical line, evaluating the
// rules in priority order. The second return value is the raw field key for
// the three field kinds and empty otherwise.
func (r *Registry) Classify(line string) (LineKind, string) {
	switch {
	case strings.HasPrefix(line, recordStartMarker):
		return LineRecordStart, ""
	case strings.HasPrefix(line, recordEndMarker):
		return LineRecordEnd, ""
	}

	if key, ok := r.matchStandard(line); ok {
		return LineStandardField, key
	}
	if key, ok := r.matchCustom(line); ok {
		return LineCustomField, key
	}
	if key, ok := r.matchSocial(line); ok {
		return LineSocialField, key
	}

	if strings.HasPrefix(line, " ") {
		return LineContinuation, ""
	}
	return LineIgnored, ""
}

// matchStandard matches known standard raw keys as line prefixes.
func (r *Registry) matchStandard(line string) (string, bool) {
	for _, key := range r.standardKeys {
		if strings.HasPrefix(line, key) {
			return key, true
		}
	}
	return "", false
}

// matchCustom matches custom raw keys by substring search within X-CUSTOM
// lines. Keys are checked in sorted order, so the match is deterministic
// even when several keys appear in one line.
func (r *Registry) matchCustom(line string) (string, bool) {
	if !strings.Contains(line, customSentinel) {
		return "", false
	}
	for _, key := range r.customKeys {
		if strings.Contains(line, key) {
			return key, true
		}
	}
	return "", false
}

// matchSocial extracts the raw key from the TYPE= parameter of the line's
// second semicolon-delimited segment and requires it to be registered.
func (r *Registry) matchSocial(line string) (string, bool) {
	if !strings.Contains(line, socialSentinel) {
		return "", false
	}
	segments := strings.Split(line, ";")
	if len(segments) < 2 {
		return "", false
	}
	key := strings.SplitN(segments[1], ":", 2)[0]
	key = strings.ReplaceAll(key, socialTypeParam, "")
	if _, ok := r.social[key]; !ok {
		return "", false
	}
	return key, true
}
