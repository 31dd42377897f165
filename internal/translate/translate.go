// Package translate extracts Japanese text runs from decoded strings,
// sends the unique runs through a pluggable Translator, and substitutes
// the results back in place.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/tabular"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// Translator is the capability a caller supplies to turn Japanese text
// runs into their translated form. Implementations may call out to an
// external service; SubstituteAll treats TranslateMany as a pure
// function of its input slice, so a Translator must not reorder or drop
// entries - the i-th output corresponds to the i-th input.
type Translator interface {
	TranslateMany(ctx context.Context, texts []string) ([]string, error)
}

// isJapanese reports whether r falls in the hiragana/katakana block
// (U+3040-U+30FF) or the CJK Unified Ideographs block used by Japanese
// text (U+4E00-U+9FAF).
func isJapanese(r rune) bool {
	return (r >= 0x3040 && r <= 0x30FF) || (r >= 0x4E00 && r <= 0x9FAF)
}

// ExtractRuns returns every maximal run of consecutive Japanese runes in
// s, in order of appearance. A string with no Japanese text returns nil.
func ExtractRuns(s string) []string {
	var runs []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			runs = append(runs, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		if isJapanese(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return runs
}

// Substitute replaces every Japanese run in s with its translation, as
// looked up in translations, leaving all other characters untouched.
func Substitute(s string, translations map[string]string) string {
	if len(translations) == 0 {
		return s
	}

	var out strings.Builder
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		run := current.String()
		if tr, ok := translations[run]; ok {
			out.WriteString(tr)
		} else {
			out.WriteString(run)
		}
		current.Reset()
	}

	for _, r := range s {
		if isJapanese(r) {
			current.WriteRune(r)
		} else {
			flush()
			out.WriteRune(r)
		}
	}
	flush()

	return out.String()
}

// SubstituteAll extracts every unique Japanese run across every Text
// cell in cells, translates the deduplicated set in a single
// TranslateMany call, and returns cells with their runs substituted,
// preserving cell order and every non-Japanese character. Opaque cells
// pass through unchanged and never reach the translator.
func SubstituteAll(ctx context.Context, cells []tabular.Cell, t Translator) ([]tabular.Cell, error) {
	seen := make(map[string]struct{})
	var unique []string

	for _, c := range cells {
		if c.Opaque {
			continue
		}
		for _, run := range ExtractRuns(c.Value) {
			if _, ok := seen[run]; !ok {
				seen[run] = struct{}{}
				unique = append(unique, run)
			}
		}
	}

	if len(unique) == 0 {
		out := make([]tabular.Cell, len(cells))
		copy(out, cells)
		return out, nil
	}

	translated, err := t.TranslateMany(ctx, unique)
	if err != nil {
		return nil, utils.WrapError("translate japanese runs", err)
	}
	if len(translated) != len(unique) {
		return nil, utils.WrapError("translate japanese runs",
			fmt.Errorf("translator returned %d results for %d inputs", len(translated), len(unique)))
	}

	lookup := make(map[string]string, len(unique))
	for i, run := range unique {
		lookup[run] = translated[i]
	}

	out := make([]tabular.Cell, len(cells))
	for i, c := range cells {
		if c.Opaque {
			out[i] = c
			continue
		}
		out[i] = tabular.TextCell(Substitute(c.Value, lookup))
	}
	return out, nil
}
