package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gravitrone/tagpicker/internal/api"
	"github.com/gravitrone/tagpicker/internal/host"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

type fakeSource struct {
	mu        sync.Mutex
	items     []api.TagItem
	err       error
	allCalls  int
	listCalls [][]string
}

func (f *fakeSource) ListTags(_ context.Context, _ string) ([]api.TagItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeSource) ListTagsByCodenames(_ context.Context, _ string, codenames []string) ([]api.TagItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, codenames)
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(codenames))
	for _, c := range codenames {
		want[c] = true
	}
	var out []api.TagItem
	for _, item := range f.items {
		if want[item.System.Codename] {
			out = append(out, item)
		}
	}
	return out, nil
}

func item(codename string, parents ...string) api.TagItem {
	return api.TagItem{
		System: api.ItemSystem{ID: "id-" + codename, Name: strings.ToUpper(codename), Codename: codename, Type: "tag"},
		Elements: api.TagElements{
			DisplayName: api.TextElement{Value: strings.ToUpper(codename)},
			ParentTags:  api.LinkedElements{Value: parents},
		},
	}
}

func abcSource() *fakeSource {
	return &fakeSource{items: []api.TagItem{item("A"), item("B", "A"), item("C", "B"), item("D")}}
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLoadAll(t *testing.T) {
	repo := New(abcSource(), nil)
	res := repo.Load(context.Background(), "p", "en", Query{})

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, taxonomy.Codenames(res.Tags))
	assert.Equal(t, []string{"A"}, res.Tags[1].ParentCodenames)
}

func TestLoadParentFiltered(t *testing.T) {
	repo := New(abcSource(), nil)
	ctx := context.Background()

	assert.Equal(t, []string{"A", "B", "C"}, taxonomy.Codenames(repo.Load(ctx, "p", "en", Query{Mode: ModeParent, Parent: "A"}).Tags))
	assert.Equal(t, []string{"B", "C"}, taxonomy.Codenames(repo.Load(ctx, "p", "en", Query{Mode: ModeParent, Parent: "B"}).Tags))

	res := repo.Load(ctx, "p", "en", Query{Mode: ModeParent, Parent: "nope"})
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Tags)
	assert.NotNil(t, res.Tags)
}

func TestLoadFetchesOncePerProjectAndLanguage(t *testing.T) {
	src := abcSource()
	repo := New(src, nil)
	ctx := context.Background()

	repo.Load(ctx, "p", "en", Query{})
	repo.Load(ctx, "p", "en", Query{Mode: ModeParent, Parent: "A"})
	assert.Equal(t, 1, src.allCalls)

	repo.Load(ctx, "p", "de", Query{})
	repo.Load(ctx, "q", "en", Query{})
	assert.Equal(t, 3, src.allCalls)
}

func TestLoadExplicitSingleBatchLogsMisses(t *testing.T) {
	src := abcSource()
	logger, logs := observed()
	repo := New(src, logger)

	res := repo.Load(context.Background(), "p", "en", Query{Mode: ModeExplicit, Codenames: []string{"C", "X", "A"}})

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"A", "C"}, taxonomy.Codenames(res.Tags))
	assert.Equal(t, []string{"X"}, res.Missing)
	require.Len(t, src.listCalls, 1)
	assert.Equal(t, []string{"C", "X", "A"}, src.listCalls[0])

	warned := logs.FilterMessage("specific tags not found").All()
	require.Len(t, warned, 1)
	assert.Equal(t, zapcore.WarnLevel, warned[0].Level)
}

func TestLoadTransportFailureDegradesToEmpty(t *testing.T) {
	logger, logs := observed()
	repo := New(&fakeSource{err: errors.New("connection refused")}, logger)

	for _, q := range []Query{{}, {Mode: ModeParent, Parent: "A"}, {Mode: ModeExplicit, Codenames: []string{"A"}}} {
		res := repo.Load(context.Background(), "p", "en", q)
		assert.Empty(t, res.Tags, q.Mode.String())
		assert.NotNil(t, res.Tags, q.Mode.String())
		assert.ErrorContains(t, res.Err, "connection refused", q.Mode.String())
	}
	assert.Equal(t, 3, logs.FilterMessage("tag fetch failed").Len())
}

func TestLoadHTTPFailureThroughClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(srv.Close)

	repo := New(api.NewClient(srv.URL, "p", ""), nil)
	res := repo.Load(context.Background(), "p", "en", Query{})
	assert.Empty(t, res.Tags)
	assert.ErrorContains(t, res.Err, "decode response")
}

func TestLoadFixedSkipsRemote(t *testing.T) {
	logger, logs := observed()
	repo := New(nil, logger)

	res := repo.Load(context.Background(), "", "en", Query{Mode: ModeFixed, Fixed: []host.FixedTag{
		{Codename: "x", Name: "X", DisplayName: "Ex", ID: "1"},
		{Codename: "y", Name: "Y", DisplayName: "Why", ID: "2", ParentTags: []string{"x", " "}},
		{Codename: "bad", Name: "Bad"},
		{Codename: "x", Name: "X2", DisplayName: "X2", ID: "3"},
	}})

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"x", "y"}, taxonomy.Codenames(res.Tags))
	assert.Empty(t, res.Tags[0].ParentCodenames)
	assert.Equal(t, []string{"x"}, res.Tags[1].ParentCodenames)
	assert.Equal(t, 1, logs.FilterMessage("fixed tag rejected").Len())
}

func TestLoadWithoutSourceFailsSoft(t *testing.T) {
	res := New(nil, nil).Load(context.Background(), "p", "en", Query{})
	assert.Empty(t, res.Tags)
	assert.ErrorContains(t, res.Err, "no data source")
}

func TestFromItemsDeduplicatesAndSkipsBlank(t *testing.T) {
	blank := item("")
	tags, skipped := FromItems([]api.TagItem{item("a"), blank, item("a", "zzz"), item("b", " a ", "")})

	assert.Equal(t, []string{"a", "b"}, taxonomy.Codenames(tags))
	assert.Empty(t, tags[0].ParentCodenames)
	assert.Equal(t, []string{"a"}, tags[1].ParentCodenames)
	assert.Equal(t, []string{"id-", "a"}, skipped)
}

func TestQueryFromConfigPriority(t *testing.T) {
	fixed := []host.FixedTag{{Codename: "x", Name: "X", DisplayName: "X", ID: "1"}}

	q := QueryFromConfig(host.ElementConfig{ParentTagCodename: "p", SpecificTagCodenames: "a,b", FixedTags: fixed})
	assert.Equal(t, ModeFixed, q.Mode)

	q = QueryFromConfig(host.ElementConfig{ParentTagCodename: "p", SpecificTagCodenames: " a , ,b "})
	assert.Equal(t, ModeExplicit, q.Mode)
	assert.Equal(t, []string{"a", "b"}, q.Codenames)

	q = QueryFromConfig(host.ElementConfig{ParentTagCodename: " p ", SpecificTagCodenames: " , "})
	assert.Equal(t, Query{Mode: ModeParent, Parent: "p"}, q)

	assert.Equal(t, Query{Mode: ModeAll}, QueryFromConfig(host.ElementConfig{}))
}

func TestLoadRoutesToProjectSource(t *testing.T) {
	def := abcSource()
	other := &fakeSource{items: []api.TagItem{item("Z")}}
	var asked []string
	r := New(def, nil, WithProjectSources(func(projectID string) Source {
		asked = append(asked, projectID)
		return other
	}))

	res := r.Load(context.Background(), "proj-2", "en", Query{})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"Z"}, taxonomy.Codenames(res.Tags))
	assert.Equal(t, []string{"proj-2"}, asked)
	assert.Equal(t, 0, def.allCalls)

	res = r.Load(context.Background(), "", "en", Query{})
	assert.Len(t, res.Tags, 4)
	assert.Equal(t, 1, def.allCalls)
}
