package vcf

import "strings"

// Fold thresholds tuned to the BusyContacts exporter: primary note lines are
// folded at 72 characters, continuation lines at 75. Lines at or below the
// threshold that end with a line terminator had that terminator inserted by
// the folding, not by the user.
const (
	noteFoldPrimary      = 72
	noteFoldContinuation = 75
)

// Non-printing markers the exporter sprinkles into note text.
const (
	nonBreakingSpace = " "
	zeroWidthSpace   = "​"
)

// decodeGeneric applies the cleanup shared by all non-note standard fields:
// line terminators and escape backslashes removed, semicolon separators
// rendered as ", ".
func decodeGeneric(data string) string {
	data = strings.ReplaceAll(data, "\n", "")
	data = strings.ReplaceAll(data, `\`, "")
	data = strings.ReplaceAll(data, ";;", ", ")
	data = strings.ReplaceAll(data, ";", ", ")
	return data
}

// decodeNotePrimary processes the note field's own line. The trailing char
// is recorded so a continuation can detect an escaped newline split across
// the fold boundary.
func decodeNotePrimary(data string, lastChar *string) string {
	data = dropFoldTerminator(data, noteFoldPrimary)
	*lastChar = lastN(data, 1)
	return cleanNoteText(data)
}

// decodeNoteContinuation processes one folded note line, with the leading
// space already stripped. When the previous contributing line ended with a
// literal backslash and this one begins with "n ", the exporter split an
// escaped newline in half: the pair is recombined into a real line break.
func decodeNoteContinuation(data string, lastChar *string) string {
	data = dropFoldTerminator(data, noteFoldContinuation)
	if *lastChar == `\` && strings.HasPrefix(data, "n ") {
		data = "\n" + data[2:]
	}
	*lastChar = lastN(data, 1)
	return cleanNoteText(data)
}

// cleanNoteText normalizes note text: the exporter's non-printing markers
// are removed, remaining literal \n escapes become real line breaks, and any
// leftover backslashes are dropped.
func cleanNoteText(data string) string {
	data = strings.ReplaceAll(data, nonBreakingSpace, "")
	data = strings.ReplaceAll(data, zeroWidthSpace, "")
	data = strings.ReplaceAll(data, `\n`, "\n")
	data = strings.ReplaceAll(data, `\`, "")
	return data
}

// dropFoldTerminator removes a trailing line terminator from lines at or
// below the fold threshold, where it is a folding artifact rather than a
// real line break.
func dropFoldTerminator(data string, threshold int) string {
	if len(data)-threshold <= 0 && strings.HasSuffix(data, "\n") {
		return data[:len(data)-1]
	}
	return data
}

// decodePhoto keeps only the base64 payload after the last comma, dropping
// any encoding-parameter prefixes.
func decodePhoto(data string) string {
	if idx := strings.LastIndex(data, ","); idx >= 0 {
		return data[idx+1:]
	}
	return data
}

// formatBirthday reformats the compact birthday value. "--MMDD" (year
// unknown) becomes "MM-DD"; "YYYYMMDD" becomes "YYYY-MM-DD". The slicing is
// a best-effort transform: unexpected shapes yield a partial result rather
// than an error.
func formatBirthday(data string) string {
	if strings.HasPrefix(data, "--") {
		return mid(data, 2, 4) + "-" + lastN(data, 2)
	}
	return dropLastN(data, 4) + "-" + mid(data, len(data)-4, len(data)-2) + "-" + lastN(data, 2)
}

// decodeFoldedFragment processes a continuation line of the address, photo,
// tags and social fields: the fragment is appended verbatim with line
// terminators removed. The leading space was already stripped.
func decodeFoldedFragment(data string) string {
	return strings.ReplaceAll(data, "\n", "")
}

// mid is s[i:j] with both bounds clamped to the string, so malformed values
// truncate instead of panicking.
func mid(s string, i, j int) string {
	if i < 0 {
		i = 0
	}
	if j > len(s) {
		j = len(s)
	}
	if i >= j {
		return ""
	}
	return s[i:j]
}

// lastN is the final n bytes of s, or all of s when shorter.
func lastN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[len(s)-n:]
}

// dropLastN is s without its final n bytes, or empty when shorter.
func dropLastN(s string, n int) string {
	if len(s) <= n {
		return ""
	}
	return s[:len(s)-n]
}
