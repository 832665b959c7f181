package site

import "github.com/OgnjenAdzic28/portfolio/internal/blog"

type LayoutKind int

const (
	LayoutEmpty LayoutKind = iota
	LayoutSingle
	LayoutGrid
	LayoutFeatured
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutSingle:
		return "single"
	case LayoutGrid:
		return "grid"
	case LayoutFeatured:
		return "featured"
	}
	return "empty"
}

// latestCount is how many posts follow the hero in the featured layout.
const latestCount = 3

// Layout partitions the blog index.
type Layout struct {
	Kind   LayoutKind
	Hero   *blog.Post
	Latest []blog.Post
	Grid   []blog.Post
}

// IndexLayout arranges posts (newest first) for the blog index. A single post
// is shown on its own, up to four as a grid. From five on, the first featured
// post (or the newest) leads, followed by the next three and a grid of the rest.
func IndexLayout(posts []blog.Post) Layout {
	switch n := len(posts); {
	case n == 0:
		return Layout{Kind: LayoutEmpty}
	case n == 1:
		return Layout{Kind: LayoutSingle, Hero: &posts[0]}
	case n <= 4:
		return Layout{Kind: LayoutGrid, Grid: posts}
	}

	hero := &posts[0]
	for i := range posts {
		if posts[i].Featured {
			hero = &posts[i]
			break
		}
	}
	rest := make([]blog.Post, 0, len(posts)-1)
	for _, p := range posts {
		if p.Slug != hero.Slug {
			rest = append(rest, p)
		}
	}
	k := min(latestCount, len(rest))
	return Layout{
		Kind:   LayoutFeatured,
		Hero:   hero,
		Latest: rest[:k],
		Grid:   rest[k:],
	}
}
