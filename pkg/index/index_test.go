package index

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

const sample = `C:Q1abc=
P:busybox
V:1.36.1-r15
A:x86_64
D:musl libcrypto3 musl

P:musl
V:1.2.4-r2
D:

P:libcrypto3
V:3.1.4-r1
D:musl
`

func TestParse(t *testing.T) {
	got := Parse([]byte(sample))
	want := []Record{
		{Name: "busybox", Version: "1.36.1-r15", Depends: []string{"musl", "libcrypto3", "musl"}},
		{Name: "musl", Version: "1.2.4-r2", Depends: []string{}},
		{Name: "libcrypto3", Version: "3.1.4-r1", Depends: []string{"musl"}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want []Record
	}{
		{
			name: "empty",
			blob: "",
			want: nil,
		},
		{
			name: "no marker",
			blob: "V:1.0\nD:foo bar\n",
			want: nil,
		},
		{
			name: "blank line does not end record",
			blob: "P:a\n\nV:2\n\nD:b\n",
			want: []Record{{Name: "a", Version: "2", Depends: []string{"b"}}},
		},
		{
			name: "marker only",
			blob: "P:solo",
			want: []Record{{Name: "solo"}},
		},
		{
			name: "name trimmed",
			blob: "P:  spaced  \n",
			want: []Record{{Name: "spaced"}},
		},
		{
			name: "empty name skipped",
			blob: "P:\nV:1\nP:b\n",
			want: []Record{{Name: "b"}},
		},
		{
			name: "crlf line endings",
			blob: "P:a\r\nV:1\r\nD:b c\r\n",
			want: []Record{{Name: "a", Version: "1", Depends: []string{"b", "c"}}},
		},
		{
			name: "later field wins",
			blob: "P:a\nD:x\nD:y z\n",
			want: []Record{{Name: "a", Depends: []string{"y", "z"}}},
		},
		{
			name: "prefix must start the line",
			blob: "P:a\n D:x\n",
			want: []Record{{Name: "a"}},
		},
		{
			name: "duplicate names kept in order",
			blob: "P:a\nV:1\nP:a\nV:2\n",
			want: []Record{{Name: "a", Version: "1"}, {Name: "a", Version: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse([]byte(tt.blob)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.blob, got, tt.want)
			}
		})
	}
}

func TestParseDropsInvalidUTF8(t *testing.T) {
	blob := []byte("P:na\xffme\nV:1\xfe.0\nD:de\xc3p\n")
	got := Parse(blob)
	want := []Record{{Name: "name", Version: "1.0", Depends: []string{"dep"}}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParseIdempotent(t *testing.T) {
	first := Parse([]byte(sample))
	second := Parse([]byte(sample))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse() not idempotent: %v vs %v", first, second)
	}
}

func TestParseReader(t *testing.T) {
	got, err := ParseReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseReader() error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ParseReader() returned %d records, want 3", len(got))
	}
}

func TestRecordKey(t *testing.T) {
	if got := (Record{Name: "a", Version: "1.0"}).Key(); got != "a@1.0" {
		t.Errorf("Key() = %q, want %q", got, "a@1.0")
	}
	if got := (Record{Name: "a"}).Key(); got != "a" {
		t.Errorf("Key() = %q, want %q", got, "a")
	}
}

func ExampleParse() {
	records := Parse([]byte("P:curl\nV:8.5.0-r0\nD:ca-certificates libcurl\n\nP:libcurl\nV:8.5.0-r0\n"))
	for _, r := range records {
		fmt.Println(r.Key(), r.Depends)
	}
	// Output:
	// curl@8.5.0-r0 [ca-certificates libcurl]
	// libcurl@8.5.0-r0 []
}
