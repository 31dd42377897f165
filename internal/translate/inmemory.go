package translate

import "context"

// MapTranslator is a Translator backed by a fixed lookup table, for use
// in tests and for offline batches where translations were produced by
// an earlier run and saved to disk.
type MapTranslator struct {
	Lookup map[string]string
}

// TranslateMany returns Lookup[text] for each input, or text itself when
// no entry exists, so an incomplete table degrades to a no-op rather
// than an error.
func (m MapTranslator) TranslateMany(_ context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	for i, s := range texts {
		if tr, ok := m.Lookup[s]; ok {
			out[i] = tr
		} else {
			out[i] = s
		}
	}
	return out, nil
}
