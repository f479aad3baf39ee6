package index

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Field prefixes of the index record grammar.
const (
	PrefixName    = "P:" // starts a record and sets its name
	PrefixVersion = "V:"
	PrefixDepends = "D:"
)

// Record is one package entry of an index.
type Record struct {
	Name    string
	Version string
	// Depends lists direct dependency names in declaration order.
	// Duplicates are kept.
	Depends []string
}

// Key returns "name@version", or just the name when the version is empty.
func (r Record) Key() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "@" + r.Version
}

// Parse splits an index blob into records.
//
// Every line beginning with [PrefixName] starts a new record; text before
// the first such line belongs to no record and is dropped. Within a record,
// [PrefixName] sets the name, [PrefixVersion] the version and
// [PrefixDepends] the whitespace-separated dependency list. Other lines,
// including blank ones, are ignored: only the next name line ends a record.
//
// Invalid UTF-8 sequences are removed before parsing, and a record whose name
// is empty after trimming is skipped, so malformed input never fails the
// whole parse. A blob without any name line yields no records.
func Parse(blob []byte) []Record {
	text := bytes.ToValidUTF8(blob, nil)

	var (
		records []Record
		cur     *Record
	)
	flush := func() {
		if cur != nil && cur.Name != "" {
			records = append(records, *cur)
		}
		cur = nil
	}

	for _, line := range bytes.Split(text, []byte("\n")) {
		s := strings.TrimSuffix(string(line), "\r")
		switch {
		case strings.HasPrefix(s, PrefixName):
			flush()
			cur = &Record{Name: strings.TrimSpace(s[len(PrefixName):])}
		case cur == nil:
			// Leading segment before the first record.
		case strings.HasPrefix(s, PrefixVersion):
			cur.Version = strings.TrimSpace(s[len(PrefixVersion):])
		case strings.HasPrefix(s, PrefixDepends):
			cur.Depends = strings.Fields(s[len(PrefixDepends):])
		}
	}
	flush()

	return records
}

// ParseReader reads r to the end and parses it with [Parse].
func ParseReader(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return Parse(data), nil
}
