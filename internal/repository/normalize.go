package repository

import (
	"strings"

	"github.com/gravitrone/tagpicker/internal/api"
	"github.com/gravitrone/tagpicker/internal/host"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// FromItems converts delivery API tag items into tags. Items without a
// codename are skipped and duplicate codenames keep their first occurrence.
func FromItems(items []api.TagItem) (tags []taxonomy.Tag, skipped []string) {
	tags = make([]taxonomy.Tag, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		codename := strings.TrimSpace(item.System.Codename)
		if codename == "" {
			skipped = append(skipped, item.System.ID)
			continue
		}
		if _, dup := seen[codename]; dup {
			skipped = append(skipped, codename)
			continue
		}
		seen[codename] = struct{}{}
		tags = append(tags, taxonomy.Tag{
			ID:              item.System.ID,
			Codename:        codename,
			Name:            item.System.Name,
			DisplayName:     item.Elements.DisplayName.Value,
			ParentCodenames: cleanCodenames(item.Elements.ParentTags.Value),
		})
	}
	return tags, skipped
}

// FromFixed converts config-supplied tags. Entries missing a mandatory field
// are returned as errors and left out.
func FromFixed(fixed []host.FixedTag) ([]taxonomy.Tag, []error) {
	tags := make([]taxonomy.Tag, 0, len(fixed))
	seen := make(map[string]struct{}, len(fixed))
	var errs []error
	for _, f := range fixed {
		if err := f.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[f.Codename]; dup {
			continue
		}
		seen[f.Codename] = struct{}{}
		tags = append(tags, taxonomy.Tag{
			ID:              f.ID,
			Codename:        f.Codename,
			Name:            f.Name,
			DisplayName:     f.DisplayName,
			ParentCodenames: cleanCodenames(f.ParentTags),
		})
	}
	return tags, errs
}

func cleanCodenames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
