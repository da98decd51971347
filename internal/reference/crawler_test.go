package reference

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	brands := map[string]string{
		"1": `{"code":200,"data":[{"id":1,"brand_name":"ACME Inc.","brand_alias":"Acm"},{"id":2,"brand_name":"Zeta Co., Ltd","brand_alias":null}]}`,
		"2": `{"code":200,"data":[{"id":3,"brand_name":"(!)","brand_alias":""}]}`,
		"3": `{"code":200,"data":[]}`,
	}
	parts := map[string]string{
		"1": `{"code":200,"data":[{"id":"p-1","part_number":"AB-123"},{"id":"p-2","part_number":"lm358 dr"}]}`,
		"2": `{"code":404,"data":null}`,
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		var body string
		switch r.URL.Path {
		case "/brands":
			body = brands[page]
		case "/parts":
			body = parts[page]
		}
		if body == "" {
			body = `{"code":200,"data":[]}`
		}
		fmt.Fprint(w, body)
	}))
}

func TestCrawler_Crawl(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()

	c := NewCrawler(srv.URL+"/brands?page={page}", srv.URL+"/parts?page={page}", 0, zerolog.Nop())
	snap, err := c.Crawl(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"acme", "zeta"}, snap.BrandNames)
	assert.Equal(t, []string{"acm"}, snap.BrandAliases)
	assert.Equal(t, []string{"ab123", "lm358dr"}, snap.PartNumbers)
	assert.Equal(t, "1", snap.BrandNameToID["acme"].ID)
	assert.Equal(t, "1", snap.BrandAliasToID["acm"].ID)
	assert.Equal(t, "p-2", snap.PartNumberToID["lm358dr"].ID)
}

func TestCrawler_MaxPages(t *testing.T) {
	srv := catalogServer(t)
	defer srv.Close()

	c := NewCrawler(srv.URL+"/brands?page={page}", srv.URL+"/parts?page={page}", 100, zerolog.Nop())
	c.MaxPages = 1
	snap, err := c.Crawl(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.BrandNames, 2)
}

func TestCrawler_EmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":200,"data":[]}`)
	}))
	defer srv.Close()

	c := NewCrawler(srv.URL+"/b?page={page}", srv.URL+"/p?page={page}", 0, zerolog.Nop())
	_, err := c.Crawl(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCrawler_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewCrawler(srv.URL+"/b?page={page}", srv.URL+"/p?page={page}", 0, zerolog.Nop())
	_, err := c.Crawl(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
