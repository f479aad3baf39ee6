package source

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"

	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
)

// maxIndexSize caps decompressed output. Real indexes are a few MiB.
const maxIndexSize = 256 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// Extract returns the plain index text contained in data.
//
// Gzip input is decompressed first. If the (decompressed) payload is a tar
// archive, the member named [IndexFile] is returned, or the first regular
// file when no member has that name. Anything else is returned unchanged.
// Corrupt archives yield a MALFORMED_INPUT error.
func Extract(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, apkerr.Wrap(apkerr.ErrCodeMalformedInput, err, "open gzip stream")
		}
		defer zr.Close()
		data, err = io.ReadAll(io.LimitReader(zr, maxIndexSize))
		if err != nil {
			return nil, apkerr.Wrap(apkerr.ErrCodeMalformedInput, err, "decompress index")
		}
	}
	if isTar(data) {
		return extractTar(data)
	}
	return data, nil
}

// isTar checks for the POSIX "ustar" magic at offset 257.
func isTar(data []byte) bool {
	const off = 257
	return len(data) >= off+5 && string(data[off:off+5]) == "ustar"
}

func extractTar(data []byte) ([]byte, error) {
	tr := tar.NewReader(bytes.NewReader(data))
	var first []byte
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apkerr.Wrap(apkerr.ErrCodeMalformedInput, err, "read archive")
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		body, err := io.ReadAll(io.LimitReader(tr, maxIndexSize))
		if err != nil {
			return nil, apkerr.Wrap(apkerr.ErrCodeMalformedInput, err, "read archive member %s", hdr.Name)
		}
		if path.Base(hdr.Name) == IndexFile {
			return body, nil
		}
		if first == nil {
			first = body
		}
	}
	if first == nil {
		return nil, apkerr.New(apkerr.ErrCodeMalformedInput, "archive contains no %s", IndexFile)
	}
	return first, nil
}
