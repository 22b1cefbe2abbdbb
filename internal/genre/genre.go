// Package genre defines the closed sets used by venue and artist forms:
// music genres and US state codes. Each member has an internal name (what
// the database stores) and a display label (what forms and pages show).
// Both directions are exact lookups against a static table; nothing is
// inferred at runtime.
//
// Genres are persisted on a venue/artist row as a single string column in
// the form "{Jazz,RocknRoll}": member names joined by commas and wrapped
// in braces. DecodeStored and EncodeStored implement that convention. A
// genre name containing a comma or a brace would break the encoding; the
// closed set below contains no such member.
package genre

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGenre is returned when a name or label has no matching genre.
var ErrUnknownGenre = errors.New("unknown genre")

// ErrUnknownState is returned when a state code is not in the closed set.
var ErrUnknownState = errors.New("unknown state")

// Genre is one member of the closed genre set. Name is the stored
// identifier, Label the human-readable form.
type Genre struct {
	Name  string
	Label string
}

// genres is the full closed set, in display order. Name and Label differ
// only where the label carries punctuation or spacing the identifier
// cannot.
var genres = []Genre{
	{Name: "Alternative", Label: "Alternative"},
	{Name: "Blues", Label: "Blues"},
	{Name: "Classical", Label: "Classical"},
	{Name: "Country", Label: "Country"},
	{Name: "Electronic", Label: "Electronic"},
	{Name: "Folk", Label: "Folk"},
	{Name: "Funk", Label: "Funk"},
	{Name: "HipHop", Label: "Hip-Hop"},
	{Name: "HeavyMetal", Label: "Heavy Metal"},
	{Name: "Instrumental", Label: "Instrumental"},
	{Name: "Jazz", Label: "Jazz"},
	{Name: "MusicalTheatre", Label: "Musical Theatre"},
	{Name: "Pop", Label: "Pop"},
	{Name: "Punk", Label: "Punk"},
	{Name: "RB", Label: "R&B"},
	{Name: "Reggae", Label: "Reggae"},
	{Name: "RocknRoll", Label: "Rock n Roll"},
	{Name: "Soul", Label: "Soul"},
	{Name: "Swing", Label: "Swing"},
	{Name: "Other", Label: "Other"},
}

var (
	byName  = map[string]Genre{}
	byLabel = map[string]Genre{}
)

func init() {
	for _, g := range genres {
		byName[g.Name] = g
		byLabel[g.Label] = g
	}
}

// All returns the genre set in display order. The returned slice is a
// copy; callers may reorder it freely.
func All() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// Labels returns the display labels of the whole set, in order. Used to
// populate form choices.
func Labels() []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		out = append(out, g.Label)
	}
	return out
}

// ByName finds a genre by its stored name.
func ByName(name string) (Genre, error) {
	g, ok := byName[name]
	if !ok {
		return Genre{}, fmt.Errorf("%w: %q", ErrUnknownGenre, name)
	}
	return g, nil
}

// ByLabel finds a genre by its display label.
func ByLabel(label string) (Genre, error) {
	g, ok := byLabel[label]
	if !ok {
		return Genre{}, fmt.Errorf("%w: %q", ErrUnknownGenre, label)
	}
	return g, nil
}

// NamesToLabels maps stored names to display labels, preserving order.
// The first unknown name aborts the conversion.
func NamesToLabels(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		g, err := ByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, g.Label)
	}
	return out, nil
}

// LabelsToNames maps display labels back to stored names, preserving
// order. The first unknown label aborts the conversion. The caller is
// responsible for EncodeStored before persisting.
func LabelsToNames(labels []string) ([]string, error) {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		g, err := ByLabel(l)
		if err != nil {
			return nil, err
		}
		out = append(out, g.Name)
	}
	return out, nil
}

// DecodeStored splits the persisted "{a,b,c}" form back into ordered
// names. An empty column decodes to an empty list rather than a single
// empty token.
func DecodeStored(stored string) []string {
	s := strings.ReplaceAll(stored, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// EncodeStored joins ordered names into the persisted "{a,b,c}" form.
func EncodeStored(names []string) string {
	return "{" + strings.Join(names, ",") + "}"
}
