package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/valves/valve"
)

// DefaultStart is used when Parse is called with an empty start key.
const DefaultStart = "AA"

var (
	// ErrMalformedLine indicates a non-blank line that is not a valve description.
	ErrMalformedLine = errors.New("parse: malformed line")

	// ErrUnknownTarget indicates a tunnel leading to a valve no line declares.
	ErrUnknownTarget = errors.New("parse: tunnel to undeclared valve")
)

var lineRE = regexp.MustCompile(
	`^Valve (\S+) has flow rate=(-?\d+); tunnels? leads? to valves? (\S+(?:, \S+)*)$`)

// entry is one parsed line, kept until all valves are known.
type entry struct {
	line int
	key  string
	flow int64
	to   []string
}

// Parse reads valve descriptions from r and returns the network rooted at
// start (DefaultStart when empty). Valves are added before tunnels, so lines
// may refer to valves declared further down.
func Parse(r io.Reader, start string) (*valve.Graph, error) {
	if start == "" {
		start = DefaultStart
	}

	var entries []entry
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		e, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		e.line = n
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	g := valve.NewGraph(start)
	for _, e := range entries {
		if err := g.AddValve(e.key, e.flow); err != nil {
			return nil, fmt.Errorf("line %d: %w", e.line, err)
		}
	}
	for _, e := range entries {
		for _, to := range e.to {
			if !g.HasValve(to) {
				return nil, fmt.Errorf("line %d: %w: %s -> %s", e.line, ErrUnknownTarget, e.key, to)
			}
			if err := g.AddTunnel(e.key, to, 1); err != nil {
				return nil, fmt.Errorf("line %d: %w", e.line, err)
			}
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// ParseFile is Parse over the contents of the file at path.
func ParseFile(path, start string) (*valve.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, start)
}

func parseLine(text string) (entry, error) {
	m := lineRE.FindStringSubmatch(text)
	if m == nil {
		return entry{}, fmt.Errorf("%w: %q", ErrMalformedLine, text)
	}
	flow, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return entry{}, fmt.Errorf("%w: flow rate %q", ErrMalformedLine, m[2])
	}

	return entry{key: m[1], flow: flow, to: strings.Split(m[3], ", ")}, nil
}
