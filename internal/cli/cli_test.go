package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/cli"
	"github.com/rshade/charscope/internal/config"
)

// fakeCatalog serves a small two-page catalog shaped like the real endpoint.
type fakeCatalog struct {
	mu      sync.Mutex
	queries []string
	fail    bool
}

//nolint:gochecknoglobals // Fixture data shared by the cli tests.
var fakePages = map[int][]catalog.Character{
	1: {
		{ID: 1, Name: "Rick Sanchez", Status: "Alive", Species: "Human", Gender: "Male",
			Origin: catalog.NamedRef{Name: "Earth (C-137)"}, Location: catalog.NamedRef{Name: "Citadel of Ricks"}},
		{ID: 2, Name: "Abradolf Lincler", Status: "unknown", Species: "Human", Gender: "Male"},
		{ID: 3, Name: "Zeep Xanflorp", Status: "Alive", Species: "Alien", Gender: "Male"},
	},
	2: {
		{ID: 4, Name: "Birdperson", Status: "Dead", Species: "Bird-Person", Gender: "Male"},
	},
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.RawQuery)
	fail := f.fail
	f.mu.Unlock()

	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	results, ok := fakePages[page]
	if err != nil || !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"There is nothing here"}`))
		return
	}

	resp := catalog.Page{
		Info:    catalog.PageInfo{Count: 4, Pages: len(fakePages)},
		Results: results,
	}
	if page < len(fakePages) {
		resp.Info.Next = fmt.Sprintf("http://%s%s?page=%d", r.Host, r.URL.Path, page+1)
	}
	if page > 1 {
		resp.Info.Prev = fmt.Sprintf("http://%s%s?page=%d", r.Host, r.URL.Path, page-1)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeCatalog) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

// setupCLITest isolates config and logs in a temp dir and points the client
// at a fake catalog.
func setupCLITest(t *testing.T) *fakeCatalog {
	t.Helper()

	fake := &fakeCatalog{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv("CHARSCOPE_API_BASE_URL", srv.URL+"/api/character")
	t.Setenv(cli.EnvLogLevel, "error")
	t.Cleanup(config.ResetGlobalConfigForTest)

	return fake
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := execute(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return stdout
}
