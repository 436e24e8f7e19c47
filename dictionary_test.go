package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWordsClient points a WordsClient at a local stub server.
func newTestWordsClient(srv *httptest.Server) *WordsClient {
	return &WordsClient{
		baseURL:  srv.URL,
		host:     "stub",
		key:      "test-key",
		client:   srv.Client(),
		fallback: fallbackWords,
	}
}

func TestWordsClientRandomWord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "true", r.URL.Query().Get("random"))
		assert.Equal(t, "5", r.URL.Query().Get("letters"))
		w.Write([]byte(`{"word":"crane"}`))
	}))
	defer srv.Close()

	client := newTestWordsClient(srv)
	assert.Equal(t, "CRANE", client.RandomWord(context.Background()))
}

func TestWordsClientRandomWordFallsBack(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"wrong length", `{"word":"hippopotamus"}`, http.StatusOK},
		{"non-alpha", `{"word":"cr4n3"}`, http.StatusOK},
		{"server error", `oops`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			word := newTestWordsClient(srv).RandomWord(context.Background())
			assert.Contains(t, fallbackWords, word)
		})
	}
}

func TestWordsClientRandomWordWithoutKey(t *testing.T) {
	client := NewWordsClient(DictionaryConfig{Host: "unused", Timeout: time.Second})
	word := client.RandomWord(context.Background())
	assert.Contains(t, fallbackWords, word)
}

func TestWordsClientBestDefinitionPrefersNoun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words/crane/definitions", r.URL.Path)
		w.Write([]byte(`{"definitions":[
			{"partOfSpeech":"verb","definition":"stretch the neck"},
			{"partOfSpeech":"Noun","definition":"a lifting machine"}
		]}`))
	}))
	defer srv.Close()

	def := newTestWordsClient(srv).BestDefinition(context.Background(), "CRANE")
	require.NotNil(t, def)
	assert.Equal(t, "noun", def.PartOfSpeech)
	assert.Equal(t, "a lifting machine", def.Definition)
}

func TestWordsClientBestDefinitionFallsBackToFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"definitions":[
			{"partOfSpeech":"verb","definition":"stretch the neck"},
			{"partOfSpeech":"adjective","definition":"  "}
		]}`))
	}))
	defer srv.Close()

	def := newTestWordsClient(srv).BestDefinition(context.Background(), "CRANE")
	require.NotNil(t, def)
	assert.Equal(t, "verb", def.PartOfSpeech)
}

func TestWordsClientBestDefinitionDegradesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.Nil(t, newTestWordsClient(srv).BestDefinition(context.Background(), "ZZZZZ"))
}

func TestWordsClientBestSynonymPrefersSingleWord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words/smile/synonyms", r.URL.Path)
		w.Write([]byte(`{"synonyms":["cover girl","smile","grin"]}`))
	}))
	defer srv.Close()

	assert.Equal(t, "grin", newTestWordsClient(srv).BestSynonym(context.Background(), "SMILE"))
}

func TestWordsClientBestSynonymFallsBackToFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"synonyms":["cover girl"]}`))
	}))
	defer srv.Close()

	assert.Equal(t, "cover girl", newTestWordsClient(srv).BestSynonym(context.Background(), "MODEL"))
}

func TestWordsClientIsRealWord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/words/crane/definitions":
			w.Write([]byte(`{"definitions":[{"partOfSpeech":"noun","definition":"a lifting machine"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestWordsClient(srv)
	assert.True(t, client.IsRealWord(context.Background(), "CRANE"))
	assert.False(t, client.IsRealWord(context.Background(), "ZZZZZ"))
}

func TestWordsClientIsRealWordWithoutKeyUsesFallbackList(t *testing.T) {
	client := NewWordsClient(DictionaryConfig{Host: "unused", Timeout: time.Second})
	assert.True(t, client.IsRealWord(context.Background(), "crane"))
	assert.False(t, client.IsRealWord(context.Background(), "ZZZZZ"))
}

func TestWordsClientTimeoutDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"word":"crane"}`))
	}))
	defer srv.Close()

	client := newTestWordsClient(srv)
	client.client = &http.Client{Timeout: 10 * time.Millisecond}

	assert.Contains(t, fallbackWords, client.RandomWord(context.Background()))
	assert.Nil(t, client.BestDefinition(context.Background(), "CRANE"))
	assert.Equal(t, "", client.BestSynonym(context.Background(), "CRANE"))
	assert.False(t, client.IsRealWord(context.Background(), "CRANE"))
}
