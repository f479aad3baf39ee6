package deps

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/apkgraph/pkg/dag"
	apkerr "github.com/matzehuels/apkgraph/pkg/errors"
)

// ParseGraphFile reads a test-mode adjacency file ("name: dep dep ...").
// Lines without a colon and lines with an empty name are skipped; a name seen
// twice keeps its last dependency list.
func ParseGraphFile(r io.Reader) (*dag.Graph, error) {
	g := dag.New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		name, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		g.Set(name, strings.Fields(rest))
	}
	if err := sc.Err(); err != nil {
		return nil, apkerr.Wrap(apkerr.ErrCodeSourceUnavailable, err, "read graph file")
	}
	return g, nil
}
