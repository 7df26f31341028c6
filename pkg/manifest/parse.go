package manifest

import (
	"bufio"
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/linkdiag/pkg/dag"
	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/errors"
)

// rootOrdinal is the reserved ordinal of the module being compiled.
const rootOrdinal = 0

type entry struct {
	ordinal int
	node    *dag.Node
	refs    []ref
	lineNo  int
	line    string
}

type ref struct {
	ordinal   int
	requested string
}

type malformed struct {
	lineNo int
	line   string
}

// Parse reads a manifest from r and returns its nodes.
//
// Malformed lines are passed to onMalformed (which may be nil) in line order
// after the whole input has been read; parsing continues past them. The
// returned graph always passes dag.Graph.Validate.
func Parse(r io.Reader, onMalformed deps.MalformedLineFunc) (dag.Graph, error) {
	var (
		entries  []*entry
		byOrd    = make(map[int]*entry)
		byID     = make(map[dag.ModuleID]bool)
		bad      []malformed
		current  *entry
		skipping bool
	)
	report := func(lineNo int, line string) { bad = append(bad, malformed{lineNo, line}) }

	br := bufio.NewReader(r)
	lineNo := 0
	for eof := false; !eof; {
		raw, err := br.ReadString('\n')
		if err == io.EOF {
			eof = true
			if raw == "" {
				continue
			}
		} else if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest")
		}
		lineNo++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "\t") {
			switch {
			case current != nil:
				path := strings.TrimPrefix(line, "\t")
				if errors.ValidateArtifactPath(path) != nil {
					report(lineNo, line)
					continue
				}
				current.node.AddArtifactPath(path)
			case !skipping:
				report(lineNo, line)
			}
			continue
		}

		e, err := parseEntry(line)
		if err != nil || byOrd[e.ordinal] != nil || byID[e.node.ID] {
			report(lineNo, line)
			current, skipping = nil, true
			continue
		}
		e.lineNo, e.line = lineNo, line
		entries = append(entries, e)
		byOrd[e.ordinal] = e
		byID[e.node.ID] = true
		current, skipping = e, false
	}

	g := make(dag.Graph, len(entries))
	for _, e := range entries {
		g[e.node.ID] = e.node
	}

	for _, e := range entries {
		broken := false
		for _, rf := range e.refs {
			dependent, ok := resolve(rf.ordinal, e.ordinal, byOrd)
			if !ok {
				broken = true
				continue
			}
			e.node.SetRequested(dependent, rf.requested)
		}
		if broken {
			report(e.lineNo, e.line)
		}
	}

	if onMalformed != nil {
		slices.SortStableFunc(bad, func(a, b malformed) int { return cmp.Compare(a.lineNo, b.lineNo) })
		for _, m := range bad {
			onMalformed(m.lineNo, m.line)
		}
	}
	return g, nil
}

// resolve maps a referenced ordinal to the dependent's identity.
func resolve(ordinal, self int, byOrd map[int]*entry) (dag.ModuleID, bool) {
	if ordinal == rootOrdinal {
		return dag.Root, true
	}
	if ordinal == self {
		return dag.Root, false
	}
	e, ok := byOrd[ordinal]
	if !ok {
		return dag.Root, false
	}
	return e.node.ID, true
}

// parseEntry parses "<ordinal> <names>[<version>] #<ord>[<req>]...".
func parseEntry(line string) (*entry, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "expected ordinal and module")
	}

	ordinal, err := strconv.Atoi(fields[0])
	if err != nil || ordinal <= rootOrdinal {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "invalid ordinal %q", fields[0])
	}

	namesPart, selected, err := splitVersion(fields[1])
	if err != nil {
		return nil, err
	}
	names := strings.Split(namesPart, ",")
	for _, n := range names {
		if err := errors.ValidateModuleName(n); err != nil {
			return nil, err
		}
	}
	id, err := dag.NewModuleID(names...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "module names")
	}

	e := &entry{ordinal: ordinal, node: dag.NewNode(id, selected)}
	for _, tok := range fields[2:] {
		rf, err := parseRef(tok)
		if err != nil {
			return nil, err
		}
		e.refs = append(e.refs, rf)
	}
	return e, nil
}

// parseRef parses "#<ordinal>[<requested>]".
func parseRef(tok string) (ref, error) {
	body, ok := strings.CutPrefix(tok, "#")
	if !ok {
		return ref{}, errors.New(errors.ErrCodeInvalidManifest, "dependent must start with '#': %q", tok)
	}
	ordPart, requested, err := splitVersion(body)
	if err != nil {
		return ref{}, err
	}
	ordinal, err := strconv.Atoi(ordPart)
	if err != nil || ordinal < rootOrdinal {
		return ref{}, errors.New(errors.ErrCodeInvalidManifest, "invalid dependent ordinal %q", ordPart)
	}
	return ref{ordinal: ordinal, requested: requested}, nil
}

// splitVersion splits "head[version]" into its parts.
func splitVersion(tok string) (string, string, error) {
	open := strings.IndexByte(tok, '[')
	if open <= 0 || !strings.HasSuffix(tok, "]") {
		return "", "", errors.New(errors.ErrCodeInvalidManifest, "expected <value>[<version>]: %q", tok)
	}
	version := tok[open+1 : len(tok)-1]
	if err := errors.ValidateVersion(version); err != nil {
		return "", "", err
	}
	return tok[:open], version, nil
}
