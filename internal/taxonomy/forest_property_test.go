package taxonomy

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// drawTags generates a collection with unique codenames whose parent lists
// point at arbitrary codenames, including unknown ones, self references and
// cycles.
func drawTags(t *rapid.T) []Tag {
	n := rapid.IntRange(0, 30).Draw(t, "n")
	tags := make([]Tag, n)
	for i := range tags {
		parentCount := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("parents_%d", i))
		parents := make([]string, parentCount)
		for j := range parents {
			// Indexes past n name tags that do not exist.
			p := rapid.IntRange(0, n+2).Draw(t, fmt.Sprintf("parent_%d_%d", i, j))
			parents[j] = fmt.Sprintf("t%d", p)
		}
		tags[i] = Tag{
			ID:              fmt.Sprintf("id-%d", i),
			Codename:        fmt.Sprintf("t%d", i),
			Name:            rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, fmt.Sprintf("name_%d", i)),
			DisplayName:     rapid.StringMatching(`[A-Za-z ]{0,8}`).Draw(t, fmt.Sprintf("display_%d", i)),
			ParentCodenames: parents,
		}
	}
	return rapid.Permutation(tags).Draw(t, "order")
}

// TestPropertyFlattenContainsEveryTagOnce verifies that flattening a built
// forest yields each input tag exactly once.
func TestPropertyFlattenContainsEveryTagOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tags := drawTags(t)
		flat := Flatten(BuildForest(tags))

		if len(flat) != len(tags) {
			t.Fatalf("flatten returned %d nodes, want %d", len(flat), len(tags))
		}
		seen := make(map[string]int, len(flat))
		for _, node := range flat {
			seen[node.Codename]++
		}
		for _, tag := range tags {
			if seen[tag.Codename] != 1 {
				t.Fatalf("tag %q appears %d times", tag.Codename, seen[tag.Codename])
			}
		}
	})
}

// TestPropertyFlattenAncestorsFirst verifies that every node comes after its
// parent and that depth grows by one per level.
func TestPropertyFlattenAncestorsFirst(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := BuildForest(drawTags(t))
		position := make(map[*TreeNode]int)
		for i, node := range Flatten(f) {
			position[node] = i
		}
		for parent, pos := range position {
			for _, child := range parent.Children {
				if position[child] <= pos {
					t.Fatalf("child %q at %d not after parent %q at %d",
						child.Codename, position[child], parent.Codename, pos)
				}
				if child.Depth != parent.Depth+1 {
					t.Fatalf("child %q depth %d, parent depth %d", child.Codename, child.Depth, parent.Depth)
				}
				if child.IsRoot {
					t.Fatalf("child %q marked as root", child.Codename)
				}
			}
		}
		for _, root := range f.Roots {
			if !root.IsRoot || root.Depth != 0 {
				t.Fatalf("root %q has IsRoot=%v depth=%d", root.Codename, root.IsRoot, root.Depth)
			}
		}
	})
}

// TestPropertyBuildForestDeterministic verifies the forest depends only on
// its input.
func TestPropertyBuildForestDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tags := drawTags(t)
		a := Codenames(Tags(Flatten(BuildForest(tags))))
		b := Codenames(Tags(Flatten(BuildForest(tags))))
		if fmt.Sprint(a) != fmt.Sprint(b) {
			t.Fatalf("two builds differ: %v vs %v", a, b)
		}
	})
}

// TestPropertySavedValueRoundTrip verifies that parsing a serialized
// selection returns its codenames in order.
func TestPropertySavedValueRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tags := drawTags(t)
		sel := NewSelection(rapid.Permutation(tags).Draw(t, "picked")...)

		raw, err := SerializeSelection(sel)
		if err != nil {
			t.Fatalf("serialize: %v", err)
		}
		got := ParseSavedValue(raw)
		want := sel.Codenames()
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("round trip = %v, want %v", got, want)
		}
	})
}

// TestPropertyExcludeSelectedIdempotent verifies a second exclusion changes
// nothing.
func TestPropertyExcludeSelectedIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tags := drawTags(t)
		var picked []Tag
		for i, tag := range tags {
			if rapid.Bool().Draw(t, fmt.Sprintf("pick_%d", i)) {
				picked = append(picked, tag)
			}
		}
		sel := NewSelection(picked...)
		once := ExcludeSelected(tags, sel)
		twice := ExcludeSelected(once, sel)
		if fmt.Sprint(Codenames(once)) != fmt.Sprint(Codenames(twice)) {
			t.Fatalf("exclude not idempotent: %v vs %v", Codenames(once), Codenames(twice))
		}
		for _, tag := range once {
			if sel.Contains(tag.Codename) {
				t.Fatalf("selected tag %q survived exclusion", tag.Codename)
			}
		}
	})
}
