package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/anagrams/internal/async"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
	"github.com/Aman-CERP/anagrams/pkg/version"
)

func newFinder(t *testing.T, words ...string) *anagram.Finder {
	t.Helper()
	idx, _, err := anagram.Build(context.Background(), anagram.SliceSource(words))
	require.NoError(t, err)
	return anagram.NewFinder(idx)
}

func readyProgress() *async.IndexProgress {
	p := async.NewIndexProgress("/dict")
	p.SetReady(async.BuildOutcome{Index: anagram.IndexStats{Keys: 2, Words: 3}})
	return p
}

func newTestServer(t *testing.T, words ...string) *Server {
	t.Helper()
	s, err := NewServer(newFinder(t, words...), readyProgress())
	require.NoError(t, err)
	return s
}

func TestNewServer_NilSearcher_ReturnsError(t *testing.T) {
	s, err := NewServer(nil, nil)

	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestServer_Info(t *testing.T) {
	name, ver := newTestServer(t).Info()

	assert.Equal(t, "anagrams", name)
	assert.Equal(t, version.Version, ver)
}

func TestServer_ListTools(t *testing.T) {
	got := newTestServer(t).ListTools()

	require.Len(t, got, 2)
	assert.Equal(t, "find_anagrams", got[0].Name)
	assert.Equal(t, "index_status", got[1].Name)
}

func TestServer_CallTool_FindAnagrams(t *testing.T) {
	// Given: a server over a small dictionary
	s := newTestServer(t, "listen", "silent", "enlist", "google")

	// When: finding anagrams of a mixed-case word
	res, err := s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "  Tinsel "})
	require.NoError(t, err)

	// Then: the normalized query and the class are returned
	out, ok := res.(*FindAnagramsOutput)
	require.True(t, ok)
	assert.Equal(t, "tinsel", out.Query)
	assert.Equal(t, "eilnst", out.Key)
	assert.Equal(t, []string{"listen", "silent", "enlist"}, out.Words)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "Anagrams of 'tinsel': listen, silent, enlist", out.Message)
}

func TestServer_CallTool_NoMatch(t *testing.T) {
	s := newTestServer(t, "abc")

	res, err := s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "xyz"})
	require.NoError(t, err)

	out := res.(*FindAnagramsOutput)
	assert.Empty(t, out.Words)
	assert.NotNil(t, out.Words)
	assert.Equal(t, "No anagrams found for 'xyz'", out.Message)
}

func TestServer_CallTool_InvalidParams(t *testing.T) {
	s := newTestServer(t, "abc")

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing word", args: nil},
		{name: "wrong type", args: map[string]any{"word": 42}},
		{name: "blank word", args: map[string]any{"word": "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CallTool(context.Background(), "find_anagrams", tt.args)
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidParams, MapError(err).Code)
		})
	}
}

func TestServer_CallTool_UnknownTool(t *testing.T) {
	_, err := newTestServer(t).CallTool(context.Background(), "search", nil)

	require.Error(t, err)
	assert.Equal(t, ErrCodeMethodNotFound, MapError(err).Code)
}

func TestServer_FindAnagrams_BeforeFirstBuild(t *testing.T) {
	s, err := NewServer(newFinder(t, "abc"), async.NewIndexProgress("/dict"))
	require.NoError(t, err)

	_, err = s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "abc"})

	require.Error(t, err)
	assert.Equal(t, ErrCodeIndexNotReady, MapError(err).Code)
}

func TestServer_FindAnagrams_DuringRebuildUsesCurrentIndex(t *testing.T) {
	progress := readyProgress()
	s, err := NewServer(newFinder(t, "stop", "pots"), progress)
	require.NoError(t, err)
	progress.Start()

	res, err := s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "tops"})

	require.NoError(t, err)
	assert.Equal(t, 2, res.(*FindAnagramsOutput).Count)
}

func TestServer_IndexStatus(t *testing.T) {
	s := newTestServer(t, "abc")

	res, err := s.CallTool(context.Background(), "index_status", nil)
	require.NoError(t, err)

	out := res.(*IndexStatusOutput)
	assert.Equal(t, "ready", out.Dictionary.Status)
	assert.Equal(t, "/dict", out.Dictionary.Folder)
	assert.Equal(t, 2, out.Dictionary.Index.Keys)
	assert.Equal(t, version.Version, out.Version)
}

func TestServer_IndexStatus_NoProgress(t *testing.T) {
	s, err := NewServer(newFinder(t, "abc"), nil)
	require.NoError(t, err)

	res, err := s.CallTool(context.Background(), "index_status", nil)
	require.NoError(t, err)

	assert.Equal(t, "ready", res.(*IndexStatusOutput).Dictionary.Status)
}

func TestServer_SeesSwappedIndex(t *testing.T) {
	finder := newFinder(t, "stop")
	s, err := NewServer(finder, readyProgress())
	require.NoError(t, err)

	idx, _, err := anagram.Build(context.Background(), anagram.SliceSource{"stop", "pots", "opts"})
	require.NoError(t, err)
	finder.Swap(idx)

	res, err := s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "stop"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.(*FindAnagramsOutput).Count)
}

// =============================================================================
// Protocol round trip
// =============================================================================

func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	go func() { _ = s.ServeTransport(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServer_Protocol_FindAnagrams(t *testing.T) {
	// Given: a client connected over an in-memory transport
	session := connect(t, newTestServer(t, "stop", "pots", "tops"))

	// When: the client calls find_anagrams
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "find_anagrams",
		Arguments: map[string]any{"word": "SPOT"},
	})
	require.NoError(t, err)

	// Then: the structured result carries the words
	require.False(t, res.IsError)
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out FindAnagramsOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "spot", out.Query)
	assert.Equal(t, []string{"stop", "pots", "tops"}, out.Words)
}

func TestServer_Protocol_ListTools(t *testing.T) {
	session := connect(t, newTestServer(t, "abc"))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"find_anagrams", "index_status"}, names)
}

func TestServer_Protocol_StatusResource(t *testing.T) {
	session := connect(t, newTestServer(t, "abc"))

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: StatusURI})
	require.NoError(t, err)

	require.Len(t, res.Contents, 1)
	var status IndexStatusOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &status))
	assert.Equal(t, "ready", status.Dictionary.Status)
}

func TestServer_Protocol_BlankWordIsToolError(t *testing.T) {
	session := connect(t, newTestServer(t, "abc"))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "find_anagrams",
		Arguments: map[string]any{"word": " "},
	})

	if err == nil {
		assert.True(t, res.IsError)
	}
}

func TestServer_IndexStatus_ReportsLookups(t *testing.T) {
	// Given: a server that answered a hit and a miss
	s := newTestServer(t, "stop", "pots")
	_, err := s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "tops"})
	require.NoError(t, err)
	_, err = s.CallTool(context.Background(), "find_anagrams", map[string]any{"word": "zzz"})
	require.NoError(t, err)

	// When: the status is read
	res, err := s.CallTool(context.Background(), "index_status", nil)
	require.NoError(t, err)

	// Then: lookup statistics are included
	lookups := res.(*IndexStatusOutput).Lookups
	assert.Equal(t, int64(2), lookups.TotalLookups)
	assert.Equal(t, int64(1), lookups.ZeroResultCount)
	assert.Equal(t, []string{"zzz"}, lookups.RecentMisses)
}
