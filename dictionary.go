package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Dictionary is the external word-provider capability. Implementations
// enforce a bounded timeout and degrade to a neutral result (empty / nil /
// false) on failure instead of propagating it; callers treat the degraded
// values as ordinary outcomes.
type Dictionary interface {
	// RandomWord returns an uppercase five-letter word, or "" when even
	// the fallback path could not produce one.
	RandomWord(ctx context.Context) string
	// BestDefinition returns the preferred definition for a word, or nil.
	BestDefinition(ctx context.Context, word string) *Definition
	// BestSynonym returns a single-word synonym for a word, or "".
	BestSynonym(ctx context.Context, word string) string
	// IsRealWord reports whether the word resolves in the dictionary.
	IsRealWord(ctx context.Context, word string) bool
}

// fallbackWords keeps the game playable when no API key is configured or the
// provider is down.
var fallbackWords = []string{
	"PLANE", "CRANE", "SNAKE", "BREAD", "GRASS",
	"WATER", "PHONE", "CHAIR", "TABLE", "SMILE",
}

var singleWordRe = regexp.MustCompile(`^\w+$`)

// WordsClient talks to WordsAPI over HTTPS with a bounded timeout.
type WordsClient struct {
	baseURL  string
	host     string
	key      string
	client   *http.Client
	fallback []string
}

// NewWordsClient creates a WordsAPI client from config. The HTTP client
// timeout caps every call so a slow provider cannot stall a request.
func NewWordsClient(cfg DictionaryConfig) *WordsClient {
	return &WordsClient{
		baseURL:  "https://" + cfg.Host,
		host:     cfg.Host,
		key:      cfg.Key,
		client:   &http.Client{Timeout: cfg.Timeout},
		fallback: fallbackWords,
	}
}

// RandomWord fetches a random five-letter word, falling back to the local
// list when the key is missing or the provider fails.
func (w *WordsClient) RandomWord(ctx context.Context) string {
	if w.key == "" {
		return w.pickFallback()
	}

	var body struct {
		Word string `json:"word"`
	}
	query := url.Values{"random": {"true"}, "letters": {"5"}}
	if err := w.getJSON(ctx, "/words/?"+query.Encode(), &body); err != nil {
		logWarn("Random word lookup failed, using fallback: %v", err)
		return w.pickFallback()
	}

	word := strings.ToUpper(strings.TrimSpace(body.Word))
	if len(word) != WordLength || !isAlphaWord(word) {
		logWarn("Random word %q unusable, using fallback", body.Word)
		return w.pickFallback()
	}
	return word
}

// BestDefinition returns the first noun definition for the word, or the first
// definition of any part of speech, or nil when none resolve.
func (w *WordsClient) BestDefinition(ctx context.Context, word string) *Definition {
	defs, err := w.definitions(ctx, word)
	if err != nil || len(defs) == 0 {
		return nil
	}

	normalized := lo.FilterMap(defs, func(d apiDefinition, _ int) (Definition, bool) {
		text := strings.TrimSpace(d.Definition)
		if text == "" {
			return Definition{}, false
		}
		return Definition{
			PartOfSpeech: strings.ToLower(d.PartOfSpeech),
			Definition:   text,
		}, true
	})
	if len(normalized) == 0 {
		return nil
	}

	if noun, ok := lo.Find(normalized, func(d Definition) bool {
		return d.PartOfSpeech == "noun"
	}); ok {
		return &noun
	}
	return &normalized[0]
}

// BestSynonym returns a synonym for the word, preferring single words that
// differ from the word itself over multi-word phrases.
func (w *WordsClient) BestSynonym(ctx context.Context, word string) string {
	if w.key == "" {
		return ""
	}

	var body struct {
		Synonyms []string `json:"synonyms"`
	}
	path := "/words/" + url.PathEscape(strings.ToLower(word)) + "/synonyms"
	if err := w.getJSON(ctx, path, &body); err != nil {
		logWarn("Synonym lookup for %q failed: %v", word, err)
		return ""
	}

	cleaned := lo.FilterMap(body.Synonyms, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	if len(cleaned) == 0 {
		return ""
	}

	wordLower := strings.ToLower(word)
	if single, ok := lo.Find(cleaned, func(s string) bool {
		return singleWordRe.MatchString(s) && strings.ToLower(s) != wordLower
	}); ok {
		return single
	}
	return cleaned[0]
}

// IsRealWord reports whether the dictionary knows the word. With no key the
// check degrades to the fallback list so an offline instance stays playable.
func (w *WordsClient) IsRealWord(ctx context.Context, word string) bool {
	if w.key == "" {
		return slices.Contains(w.fallback, strings.ToUpper(word))
	}
	defs, err := w.definitions(ctx, word)
	if err != nil {
		return false
	}
	return len(defs) > 0
}

type apiDefinition struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
}

// definitions fetches the raw definition list for a word. A 404 means "not a
// word" and returns an empty list without error.
func (w *WordsClient) definitions(ctx context.Context, word string) ([]apiDefinition, error) {
	if w.key == "" {
		return nil, nil
	}

	var body struct {
		Definitions []apiDefinition `json:"definitions"`
	}
	path := "/words/" + url.PathEscape(strings.ToLower(word)) + "/definitions"
	if err := w.getJSON(ctx, path, &body); err != nil {
		if err == errNotFoundUpstream {
			return nil, nil
		}
		logWarn("Definition lookup for %q failed: %v", word, err)
		return nil, err
	}
	return body.Definitions, nil
}

var errNotFoundUpstream = fmt.Errorf("upstream 404")

// getJSON performs an authenticated GET against WordsAPI and decodes the
// response body into dest.
func (w *WordsClient) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Key", w.key)
	req.Header.Set("X-RapidAPI-Host", w.host)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFoundUpstream
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// pickFallback returns a uniformly random word from the fallback list.
func (w *WordsClient) pickFallback() string {
	if len(w.fallback) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(w.fallback))))
	if err != nil {
		logWarn("Error generating random number: %v, using first fallback word", err)
		return w.fallback[0]
	}
	return w.fallback[n.Int64()]
}
