package engine

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/noahvogt/modulplaner-backend/pkg/model"
	"github.com/noahvogt/modulplaner-backend/pkg/registry"
)

// Resolution is the three-way result of resolving a lecturer shorthand.
// The raw text is always preserved so downstream consumers can keep the
// reference even when resolution failed.
type Resolution struct {
	Raw        string
	Status     model.ResolutionStatus
	FullName   string   // set only for Resolved
	Candidates []string // set only for Ambiguous
	Verified   bool     // true when backed by a trusted registry
}

// Resolver maps lecturer shorthands to canonical lecturers. With a
// trusted registry it exact-matches first, then retries with a
// normalization pass; without one every resolution is tentative and
// marked unverified. Shorthand collisions are reported exactly once per
// shorthand per run and never resolved by arbitrary precedence.
type Resolver struct {
	index     map[string][]string // shorthand -> full names
	normIndex map[string][]string // normalized shorthand -> full names
	trusted   bool
	diags     *Collector

	reportedCollisions map[string]bool
	reportedUnresolved map[string]bool
}

// NewResolver builds a resolver over an optional trusted registry.
// Collisions already present in the registry (the same shorthand claimed
// by different full names across the two lecturer source documents) are
// reported up front.
func NewResolver(reg *registry.Lecturers, diags *Collector) *Resolver {
	r := &Resolver{
		index:              make(map[string][]string),
		normIndex:          make(map[string][]string),
		diags:              diags,
		reportedCollisions: make(map[string]bool),
		reportedUnresolved: make(map[string]bool),
	}

	if reg == nil {
		return r
	}
	r.trusted = true

	for short, names := range reg.Index() {
		r.index[short] = names
		normed := NormalizeShorthand(short)
		for _, name := range names {
			if !contains(r.normIndex[normed], name) {
				r.normIndex[normed] = append(r.normIndex[normed], name)
			}
		}
	}
	for normed := range r.normIndex {
		sort.Strings(r.normIndex[normed])
	}

	// Collisions between the source documents are data corruption to
	// surface, never to silently merge.
	collisions := reg.Collisions()
	collisionShorts := make([]string, 0, len(collisions))
	for short := range collisions {
		collisionShorts = append(collisionShorts, short)
	}
	sort.Strings(collisionShorts)
	for _, short := range collisionShorts {
		r.reportCollision(short, collisions[short])
	}

	return r
}

// Resolve maps one raw lecturer shorthand to a resolution.
func (r *Resolver) Resolve(raw string) Resolution {
	if !r.trusted {
		r.reportUnresolved(raw, model.SeverityInfo)
		return Resolution{Raw: raw, Status: model.StatusUnresolved}
	}

	if names, ok := r.index[raw]; ok {
		return r.fromCandidates(raw, names)
	}

	if names, ok := r.normIndex[NormalizeShorthand(raw)]; ok {
		return r.fromCandidates(raw, names)
	}

	r.reportUnresolved(raw, model.SeverityWarning)
	return Resolution{Raw: raw, Status: model.StatusUnresolved, Verified: true}
}

func (r *Resolver) fromCandidates(raw string, names []string) Resolution {
	if len(names) == 1 {
		return Resolution{
			Raw:      raw,
			Status:   model.StatusResolved,
			FullName: names[0],
			Verified: true,
		}
	}
	r.reportCollision(raw, names)
	return Resolution{
		Raw:        raw,
		Status:     model.StatusAmbiguous,
		Candidates: append([]string(nil), names...),
		Verified:   true,
	}
}

func (r *Resolver) reportCollision(shorthand string, names []string) {
	if r.reportedCollisions[shorthand] {
		return
	}
	r.reportedCollisions[shorthand] = true
	r.diags.Record(model.Diagnostic{
		Kind:       model.DiagAmbiguousResolution,
		Severity:   model.SeverityWarning,
		Subject:    shorthand,
		Candidates: append([]string(nil), names...),
		Message:    fmt.Sprintf("lecturer shorthand %q is claimed by %d different full names", shorthand, len(names)),
	})
}

func (r *Resolver) reportUnresolved(shorthand string, severity model.Severity) {
	if r.reportedUnresolved[shorthand] {
		return
	}
	r.reportedUnresolved[shorthand] = true
	r.diags.Record(model.Diagnostic{
		Kind:     model.DiagUnresolvedLecturer,
		Severity: severity,
		Subject:  shorthand,
		Message:  fmt.Sprintf("lecturer shorthand %q could not be resolved", shorthand),
	})
}

// germanReplacer transliterates the German letters that commonly differ
// between the two lecturer source documents.
var germanReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
)

// diacriticStripper removes combining marks left after NFD decomposition.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeShorthand case-folds a shorthand and strips the non-ASCII
// substitutions seen in corrupted source data.
func NormalizeShorthand(s string) string {
	s = germanReplacer.Replace(s)
	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}
	return strings.ToLower(s)
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
