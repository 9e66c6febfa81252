package rewrite

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultPrefix starts every generated identifier.
const DefaultPrefix = "_sw"

var identPrefixRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func validatePrefix(prefix string) error {
	if !identPrefixRe.MatchString(prefix) {
		return errors.Errorf("invalid identifier prefix %q", prefix)
	}
	if strings.Contains(prefix, keyword) {
		return errors.Errorf("identifier prefix %q contains %q", prefix, keyword)
	}
	return nil
}

// namer issues identifiers that occur nowhere in the source text and were
// not issued before. Any identifier the program could refer to is spelled
// out in its text, so a name absent from the text cannot collide.
type namer struct {
	prefix string
	src    string
	random bool
	n      int
	used   map[string]bool
}

func newNamer(prefix, src string, random bool) *namer {
	return &namer{prefix: prefix, src: src, random: random, used: map[string]bool{}}
}

func (nm *namer) next() string {
	for {
		name := nm.candidate()
		if nm.used[name] || strings.Contains(nm.src, name) {
			continue
		}
		nm.used[name] = true
		return name
	}
}

func (nm *namer) candidate() string {
	if nm.random {
		return nm.prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	name := nm.prefix + strconv.Itoa(nm.n)
	nm.n++
	return name
}
