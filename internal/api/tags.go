package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// TagType is the content type codename of taxonomy tag items.
const TagType = "tag"

// ListTags returns every tag item in the given language.
func (c *Client) ListTags(ctx context.Context, language string) ([]TagItem, error) {
	data, err := c.get(ctx, buildQuery(c.itemsPath(), tagParams(language)))
	if err != nil {
		return nil, err
	}
	return decodeItems[TagItem](data)
}

// ListTagsByCodenames returns the tag items whose codename is in codenames,
// fetched in one request. Codenames with no matching item are simply missing
// from the result.
func (c *Client) ListTagsByCodenames(ctx context.Context, language string, codenames []string) ([]TagItem, error) {
	if len(codenames) == 0 {
		return []TagItem{}, nil
	}
	params := tagParams(language)
	params["system.codename[in]"] = strings.Join(codenames, ",")
	data, err := c.get(ctx, buildQuery(c.itemsPath(), params))
	if err != nil {
		return nil, err
	}
	return decodeItems[TagItem](data)
}

func (c *Client) itemsPath() string {
	return fmt.Sprintf("/%s/items", url.PathEscape(c.projectID))
}

func tagParams(language string) QueryParams {
	return QueryParams{
		"system.type": TagType,
		"language":    language,
	}
}

// SplitCodenames parses a comma separated codename list, trimming entries and
// dropping empty ones.
func SplitCodenames(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
