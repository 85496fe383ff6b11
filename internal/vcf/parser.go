package vcf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
)

// maxLineLength caps a single physical line. Inline photo payloads are the
// longest lines the exporter produces.
const maxLineLength = 4 * 1024 * 1024

// Parser assembles contact records from a VCF line stream. The registry is
// read-only, and every Parse call sets up its own state, so a Parser (or a
// registry shared by several parsers) is safe for concurrent Parse calls.
type Parser struct {
	registry *Registry
}

func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// parserState is the in-progress record plus the context the continuation
// decoding needs, including the per-record occurrence counters that drive
// the _N disambiguation. Reset wholesale at every record start, so counters
// belong to exactly one record and never outlive the Parse call.
type parserState struct {
	listening bool
	record    *Contact
	counts    map[string]int

	lastRawKey    string
	lastFieldName string
	lastChar      string
}

// Parse consumes the stream line by line and returns the store of contacts
// that passed the filter, in input encounter order. An unterminated trailing
// record is discarded, not an error.
func (p *Parser) Parse(r io.Reader, filter Filter) (*Store, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanLinesKeepTerminator)

	store := NewStore()
	state := &parserState{}

	for scanner.Scan() {
		p.processLine(scanner.Text(), state, filter, store)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading vcf stream: %w", err)
	}

	if state.listening {
		log.Printf("Discarding unterminated trailing record")
	}

	return store, nil
}

func (p *Parser) processLine(line string, state *parserState, filter Filter, store *Store) {
	kind, rawKey := p.registry.Classify(line)

	switch kind {
	case LineRecordStart:
		*state = parserState{listening: true, record: NewContact(), counts: make(map[string]int)}
		p.assignNameComponents(state.record, line)

	case LineRecordEnd:
		if !state.listening {
			return
		}
		state.listening = false
		p.finalize(state.record, filter, store)
		state.record = nil

	case LineStandardField:
		if state.listening {
			p.processStandard(state, rawKey, line)
		}

	case LineCustomField:
		if state.listening {
			p.processCustom(state, rawKey, line)
		}

	case LineSocialField:
		if state.listening {
			p.processSocial(state, rawKey, line)
		}

	case LineContinuation:
		if state.listening {
			p.processContinuation(state, line)
		}
	}
}

// assignNameComponents splits the record-start line's value into the four
// name components. Absent components are omitted, not defaulted.
func (p *Parser) assignNameComponents(record *Contact, line string) {
	value := line
	if idx := strings.LastIndex(line, ":"); idx >= 0 {
		value = line[idx+1:]
	}
	value = strings.TrimRight(value, "\n")

	components := strings.Split(value, ";")
	names := []string{FieldLastName, FieldFirstName, FieldMiddleName1, FieldMiddleName2}
	for i, name := range names {
		if i >= len(components) {
			break
		}
		if components[i] != "" {
			record.Set(name, components[i])
		}
	}
}

// destinationName resolves where this occurrence of a field is stored: the
// bare canonical name on first occurrence; on later occurrences the value
// currently held under the bare name is archived under the next numeric
// suffix, so the bare name always carries the latest occurrence.
func (p *Parser) destinationName(state *parserState, rawKey, name string) string {
	state.counts[rawKey]++
	if count := state.counts[rawKey]; count > 1 {
		state.record.Rename(name, fmt.Sprintf("%s_%d", name, count-1))
	}
	return name
}

func (p *Parser) processStandard(state *parserState, rawKey, line string) {
	name, ok := p.registry.Standard(rawKey)
	if !ok {
		return
	}
	name = p.destinationName(state, rawKey, name)

	// The note value starts after the literal key token, tolerating colons
	// embedded in the text. Everything else takes the text after the final
	// colon.
	data := line
	if rawKey == keyNote {
		if idx := strings.LastIndex(line, keyNote+":"); idx >= 0 {
			data = line[idx+len(keyNote)+1:]
		}
	} else if idx := strings.LastIndex(line, ":"); idx >= 0 {
		data = line[idx+1:]
	}

	// Empty address components leave a leading ";;" pair.
	data = strings.TrimPrefix(data, ";;")

	switch rawKey {
	case keyNote:
		data = decodeNotePrimary(data, &state.lastChar)
	default:
		data = decodeGeneric(data)
	}

	switch rawKey {
	case keyAddress:
		// A leading ";;" that survived as ", " is itself an artifact.
		data = strings.TrimPrefix(data, ", ")
	case keyPhoto:
		data = decodePhoto(data)
	case keyBirthday:
		data = formatBirthday(data)
	}

	state.record.Set(name, data)
	state.lastRawKey = rawKey
	state.lastFieldName = name
}

func (p *Parser) processCustom(state *parserState, rawKey, line string) {
	name, ok := p.registry.Custom(rawKey)
	if !ok {
		return
	}
	name = p.destinationName(state, rawKey, name)

	data := line
	if idx := strings.LastIndex(line, customValueSeparator); idx >= 0 {
		data = line[idx+len(customValueSeparator):]
	}
	data = strings.ReplaceAll(data, "\n", "")

	state.record.Set(name, data)
	state.lastRawKey = rawKey
	state.lastFieldName = name
}

func (p *Parser) processSocial(state *parserState, rawKey, line string) {
	name, ok := p.registry.Social(rawKey)
	if !ok {
		return
	}
	name = p.destinationName(state, rawKey, name)

	segments := strings.Split(line, ";")
	last := segments[len(segments)-1]
	labelPrefix := strings.SplitN(last, ":", 2)[0] + ":"
	data := strings.ReplaceAll(last, labelPrefix, "")
	data = strings.ReplaceAll(data, "\n", "")

	state.record.Set(name, data)
	state.lastRawKey = rawKey
	state.lastFieldName = name
}

// processContinuation folds a continuation line into the last processed
// field. Only the address, note, photo, tags and social fields legitimately
// fold across lines; a continuation for any other field is dropped.
func (p *Parser) processContinuation(state *parserState, line string) {
	switch state.lastRawKey {
	case keyAddress, keyNote, keyPhoto, keyCategories:
	default:
		if !p.registry.IsSocial(state.lastRawKey) {
			return
		}
	}

	fragment := line[1:]
	if state.lastRawKey == keyNote {
		fragment = decodeNoteContinuation(fragment, &state.lastChar)
	} else {
		fragment = decodeFoldedFragment(fragment)
	}
	state.record.Append(state.lastFieldName, fragment)
}

// finalize applies the tag filter at the record boundary and hands accepted
// records to the store. When tags were requested, a record lacking a tags
// field is discarded without evaluating the predicate.
func (p *Parser) finalize(record *Contact, filter Filter, store *Store) {
	if !filter.Empty() {
		tagsName := p.registry.TagsFieldName()
		if !record.Has(tagsName) {
			log.Printf("Skipping contact without a %s field while tags are requested", tagsName)
			return
		}
		if !filter.Accepts(record, tagsName) {
			return
		}
	}
	store.Append(record)
}

// scanLinesKeepTerminator is bufio.ScanLines keeping the trailing newline.
// The folding heuristics need the terminator to tell a fold artifact from a
// real line break. A \r\n pair is normalized to \n.
func scanLinesKeepTerminator(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		token = data[:i+1]
		if i > 0 && data[i-1] == '\r' {
			token = append(append([]byte{}, data[:i-1]...), '\n')
		}
		return i + 1, token, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
