package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTags(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/proj-1/items", r.URL.Path)
		assert.Equal(t, "tag", r.URL.Query().Get("system.type"))
		assert.Equal(t, "es-ES", r.URL.Query().Get("language"))
		assert.Empty(t, r.URL.Query().Get("system.codename[in]"))

		w.Write(itemsResponseBody(
			tagItem("1", "fruit", "Fruit", "Fruit"),
			tagItem("2", "apple", "Apple", "Manzana", "fruit"),
		))
	})

	items, err := client.ListTags(context.Background(), "es-ES")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "fruit", items[0].System.Codename)
	assert.Equal(t, "Manzana", items[1].Elements.DisplayName.Value)
	assert.Equal(t, Codenames{"fruit"}, items[1].Elements.ParentTags.Value)
}

func TestListTagsByCodenamesSingleRequest(t *testing.T) {
	calls := 0
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "a,b,c", r.URL.Query().Get("system.codename[in]"))
		assert.Equal(t, "tag", r.URL.Query().Get("system.type"))
		w.Write(itemsResponseBody(tagItem("1", "a", "A", "A")))
	})

	items, err := client.ListTagsByCodenames(context.Background(), "default", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].System.Codename)
}

func TestListTagsByCodenamesEmptySkipsRequest(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request to %s", r.URL)
	})

	items, err := client.ListTagsByCodenames(context.Background(), "default", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCodenamesUnmarshal(t *testing.T) {
	var c Codenames
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &c))
	assert.Equal(t, Codenames{"a", "b"}, c)

	require.NoError(t, json.Unmarshal([]byte(`" a, ,b "`), &c))
	assert.Equal(t, Codenames{"a", "b"}, c)

	c = Codenames{"stale"}
	require.NoError(t, json.Unmarshal([]byte(`null`), &c))
	assert.Empty(t, c)

	assert.Error(t, json.Unmarshal([]byte(`42`), &c))
}

func TestSplitCodenames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCodenames(" a ,, b ,"))
	assert.Equal(t, []string{}, SplitCodenames(""))
	assert.Equal(t, []string{}, SplitCodenames(" , "))
}
