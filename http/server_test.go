package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dochive/dochive"
	dochivehttp "github.com/dochive/dochive/http"
	"github.com/dochive/dochive/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTree() *dochive.Tree {
	return &dochive.Tree{
		Categories: []dochive.Category{{
			Name: "Basics",
			Docs: []*dochive.Document{{
				FileInfo: dochive.FileInfo{
					Path:       "/docs/intro.md",
					Filename:   "intro.md",
					SourceName: "Core",
					SourceKind: dochive.SourceKindPrimary,
				},
				Title:    "Introduction",
				HTML:     "<h1>Introduction</h1>",
				Raw:      "# Introduction",
				VideoURL: "https://www.youtube.com/embed/abc",
			}},
		}},
	}
}

func fixtureLibrary() *mock.Library {
	return &mock.Library{
		OrganizedDocsFn: func(context.Context) (*dochive.Tree, error) {
			return fixtureTree(), nil
		},
	}
}

func newServer() *dochivehttp.Server {
	s := dochivehttp.NewServer()
	s.Library = fixtureLibrary()
	return s
}

// do runs a request through the full handler chain without a listener.
func do(t *testing.T, s *dochivehttp.Server, method, target string) (*http.Response, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	resp := rec.Result()
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestServer_Doc(t *testing.T) {
	t.Parallel()

	t.Run("returns the rendered document", func(t *testing.T) {
		t.Parallel()

		s := newServer()

		resp, body := do(t, s, http.MethodGet, "/api/doc?path="+url.QueryEscape("/docs/intro.md"))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "<h1>Introduction</h1>", body["html"])
		assert.Equal(t, "Introduction", body["title"])
		assert.Equal(t, "https://www.youtube.com/embed/abc", body["video_url"])
		assert.Equal(t, "Core", body["source"])
	})

	t.Run("rejects a missing path", func(t *testing.T) {
		t.Parallel()

		s := newServer()

		resp, body := do(t, s, http.MethodGet, "/api/doc")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "invalid", errObj["code"])
	})

	t.Run("404s an unknown document", func(t *testing.T) {
		t.Parallel()

		s := newServer()

		resp, _ := do(t, s, http.MethodGet, "/api/doc?path="+url.QueryEscape("/docs/missing.md"))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns results", func(t *testing.T) {
		t.Parallel()

		s := newServer()
		s.Searcher = &mock.Searcher{
			SearchFn: func(_ *dochive.Tree, query string) []dochive.SearchResult {
				return []dochive.SearchResult{{Title: "Introduction", Path: "/docs/intro.md", Score: 10}}
			},
		}

		resp, body := do(t, s, http.MethodGet, "/api/search?q=intro")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		results := body["results"].([]any)
		require.Len(t, results, 1)
		assert.Equal(t, "Introduction", results[0].(map[string]any)["title"])
	})

	t.Run("returns an empty list rather than null", func(t *testing.T) {
		t.Parallel()

		s := newServer()
		s.Searcher = &mock.Searcher{
			SearchFn: func(*dochive.Tree, string) []dochive.SearchResult { return nil },
		}

		resp, body := do(t, s, http.MethodGet, "/api/search?q=nothing")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		results, ok := body["results"].([]any)
		assert.True(t, ok)
		assert.Empty(t, results)
	})

	t.Run("rejects a missing query", func(t *testing.T) {
		t.Parallel()

		s := newServer()

		resp, _ := do(t, s, http.MethodGet, "/api/search")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_AISearch(t *testing.T) {
	t.Parallel()

	t.Run("returns the answer", func(t *testing.T) {
		t.Parallel()

		s := newServer()
		s.Answerer = &mock.Answerer{
			AnswerFn: func(context.Context, *dochive.Tree, string) (*dochive.Answer, error) {
				return &dochive.Answer{
					Text:    "Open the settings page [1].",
					Sources: []dochive.AnswerSource{{Title: "Introduction", Path: "/docs/intro.md"}},
					Related: []string{"setup"},
				}, nil
			},
		}

		resp, body := do(t, s, http.MethodGet, "/api/ai-search?q=how+do+i+start")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Open the settings page [1].", body["answer"])
		sources := body["sources"].([]any)
		require.Len(t, sources, 1)
		assert.Equal(t, "/docs/intro.md", sources[0].(map[string]any)["path"])
	})

	t.Run("falls back to keyword search when the capability is unavailable", func(t *testing.T) {
		t.Parallel()

		s := newServer()
		s.Answerer = &mock.Answerer{
			AnswerFn: func(context.Context, *dochive.Tree, string) (*dochive.Answer, error) {
				return nil, dochive.Errorf(dochive.EUNAVAILABLE, "AI capability not available")
			},
		}
		s.Searcher = &mock.Searcher{
			SearchFn: func(*dochive.Tree, string) []dochive.SearchResult {
				return []dochive.SearchResult{{Title: "Introduction"}}
			},
		}

		resp, body := do(t, s, http.MethodGet, "/api/ai-search?q=start")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["fallback"])
		assert.Len(t, body["results"].([]any), 1)
	})

	t.Run("surfaces validation errors", func(t *testing.T) {
		t.Parallel()

		s := newServer()

		resp, _ := do(t, s, http.MethodGet, "/api/ai-search")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_Stats(t *testing.T) {
	t.Parallel()

	s := newServer()
	s.Library = &mock.Library{
		StatsFn: func(context.Context) (dochive.CacheStats, error) {
			return dochive.CacheStats{
				IsCached:      true,
				Fingerprint:   "abcd",
				BaselineMatch: true,
				CacheKey:      "dochive:tree:abcd",
				Documents:     3,
			}, nil
		},
	}

	resp, body := do(t, s, http.MethodGet, "/api/stats")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isCached"])
	assert.Equal(t, "abcd", body["fingerprint"])
	assert.Equal(t, float64(3), body["documents"])
}

func TestServer_Invalidate(t *testing.T) {
	t.Parallel()

	t.Run("clears the cache", func(t *testing.T) {
		t.Parallel()

		invalidated := false
		s := newServer()
		s.Library = &mock.Library{
			InvalidateAllFn: func(context.Context) error {
				invalidated = true
				return nil
			},
		}

		resp, body := do(t, s, http.MethodPost, "/api/invalidate")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["invalidated"])
		assert.True(t, invalidated)
	})

	t.Run("rejects GET", func(t *testing.T) {
		t.Parallel()

		s := newServer()

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invalidate", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestServer_OpenClose(t *testing.T) {
	t.Parallel()

	s := newServer()
	s.Addr = "127.0.0.1:0"
	s.Searcher = &mock.Searcher{
		SearchFn: func(*dochive.Tree, string) []dochive.SearchResult { return nil },
	}

	require.NoError(t, s.Open())
	defer s.Close()

	resp, err := http.Get(s.URL() + "/api/search?q=x")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
