package source

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"

	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
)

const sampleIndex = "P:busybox\nV:1.36.1-r2\nD:musl\n\nP:musl\nV:1.2.4-r2\n"

type member struct {
	name string
	body string
}

func makeTar(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		hdr := &tar.Header{Name: m.name, Mode: 0644, Size: int64(len(m.body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("WriteHeader: %v", err)
		}
		if _, err := tw.Write([]byte(m.body)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	archive := makeTar(t,
		member{".SIGN.RSA.alpine.rsa.pub", "sig"},
		member{"DESCRIPTION", "v3.19"},
		member{IndexFile, sampleIndex},
	)

	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain text", []byte(sampleIndex), sampleIndex},
		{"gzip only", gzipBytes(t, []byte(sampleIndex)), sampleIndex},
		{"tar only", archive, sampleIndex},
		{"tar.gz", gzipBytes(t, archive), sampleIndex},
		{"first regular file fallback", makeTar(t, member{"index.txt", "P:x\n"}), "P:x\n"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.in)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractConcatenatedStreams(t *testing.T) {
	// Repository archives are a signature stream followed by the index stream.
	sig := makeTar(t, member{".SIGN.RSA.key.pub", "sig"})
	sig = sig[:len(sig)-1024] // drop end-of-archive blocks like abuild does
	body := makeTar(t, member{IndexFile, sampleIndex})

	data := append(gzipBytes(t, sig), gzipBytes(t, body)...)
	got, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if string(got) != sampleIndex {
		t.Errorf("Extract() = %q, want %q", got, sampleIndex)
	}
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"truncated gzip", gzipBytes(t, []byte(sampleIndex))[:12]},
		{"bad gzip header", []byte{0x1f, 0x8b, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.in)
			if !apkerr.Is(err, apkerr.ErrCodeMalformedInput) {
				t.Errorf("Extract() error = %v, want MALFORMED_INPUT", err)
			}
		})
	}
}

func TestExtractTarWithoutRegularFiles(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{Name: "dir/", Mode: 0755, Typeflag: tar.TypeDir}); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}

	_, err := Extract(buf.Bytes())
	if !apkerr.Is(err, apkerr.ErrCodeMalformedInput) {
		t.Errorf("Extract() error = %v, want MALFORMED_INPUT", err)
	}
}
