package blog

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OgnjenAdzic28/portfolio/internal/content"
)

func postFile(title, date string, extra string) *fstest.MapFile {
	fm := "---\ntitle: " + title + "\n"
	if date != "" {
		fm += "publishedDate: " + date + "\n"
	}
	return &fstest.MapFile{Data: []byte(fm + extra + "---\n# " + title + "\n\nBody of " + title + "\n")}
}

func testCollection() fstest.MapFS {
	return fstest.MapFS{
		"content/posts/first-steps.mdoc":   postFile("First Steps", "2024-01-01", "featured: true\ntags: [go]\n"),
		"content/posts/summer-notes.mdoc":  postFile("Summer Notes", "2024-06-01", "readTime: 12\n"),
		"content/posts/winter-recap.mdoc":  postFile("Winter Recap", "2023-12-01", "featured: true\n"),
		"content/posts/Hello World.mdoc":   postFile("Hello", "2024-02-02", "author:\n  name: Ana\n"),
		"content/posts/ćevapi-guide.mdoc":  postFile("Cevapi", "2024-03-03", ""),
		"content/posts/unfinished.mdoc":    postFile("Unfinished", "", "featured: true\n"),
		"content/posts/Unpublished X.mdoc": postFile("Unpublished X", "", ""),
	}
}

func newTestResolver(fsys fstest.MapFS) *Resolver {
	store := content.NewFileStore(fsys, "content/posts", ".mdoc")
	return NewResolver(store, WithFS(fsys, "content/posts", ".mdoc"))
}

func TestResolvePostBySlug(t *testing.T) {
	r := newTestResolver(testCollection())
	ctx := context.Background()

	all, err := r.AllPosts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	for _, p := range all {
		got, ok := r.ResolvePost(ctx, p.Slug)
		require.True(t, ok, p.Slug)
		assert.Equal(t, p.Slug, got.Slug)

		encoded, ok := r.ResolvePost(ctx, encodeComponent(p.Slug))
		require.True(t, ok, encodeComponent(p.Slug))
		assert.Equal(t, got.Slug, encoded.Slug)
		assert.Equal(t, got.Title, encoded.Title)
	}
}

func TestResolvePostDoubleEncoded(t *testing.T) {
	r := newTestResolver(testCollection())

	got, ok := r.ResolvePost(context.Background(), encodeComponent(encodeComponent("ćevapi-guide")))
	require.True(t, ok)
	assert.Equal(t, "ćevapi-guide", got.Slug)
}

func TestResolvePostNormalizedMatch(t *testing.T) {
	r := newTestResolver(testCollection())
	ctx := context.Background()

	for _, id := range []string{"hello-world", "HELLO-WORLD", "  Hello World  ", "Hello%20World"} {
		got, ok := r.ResolvePost(ctx, id)
		require.True(t, ok, id)
		assert.Equal(t, "Hello World", got.Slug, id)
		assert.Equal(t, "Ana", got.Author.Name)
	}
}

func TestResolvePostUnpublished(t *testing.T) {
	r := newTestResolver(testCollection())
	ctx := context.Background()

	for _, id := range []string{"unfinished", encodeComponent("unfinished"), "UNFINISHED", "Unpublished X", "unpublished-x", "Unpublished%20X"} {
		_, ok := r.ResolvePost(ctx, id)
		assert.False(t, ok, id)
	}
}

func TestResolvePostMisses(t *testing.T) {
	r := newTestResolver(testCollection())
	ctx := context.Background()

	for _, id := range []string{"", "%", "%zz", "nonexistent-slug-xyz", "../first-steps", "first-steps/"} {
		assert.NotPanics(t, func() {
			_, ok := r.ResolvePost(ctx, id)
			assert.False(t, ok, id)
		})
	}

	_, err := r.PostBySlug(ctx, "nonexistent-slug-xyz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolvePostDefaults(t *testing.T) {
	r := newTestResolver(testCollection())

	got, ok := r.ResolvePost(context.Background(), "winter-recap")
	require.True(t, ok)
	assert.Equal(t, DefaultReadTime, got.ReadTime)
	assert.Equal(t, DefaultAuthor, got.Author.Name)
	assert.Nil(t, got.Author.Avatar)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.Excerpt)
	assert.Nil(t, got.CoverImage)
	assert.Equal(t, "December 1, 2023", got.Date())

	summer, ok := r.ResolvePost(context.Background(), "summer-notes")
	require.True(t, ok)
	assert.Equal(t, 12, summer.ReadTime)
}

func TestResolvePostConfiguredAuthor(t *testing.T) {
	fsys := testCollection()
	store := content.NewFileStore(fsys, "content/posts", ".mdoc")
	r := NewResolver(store, WithDefaultAuthor("Ognjen Adzic"))

	got, ok := r.ResolvePost(context.Background(), "first-steps")
	require.True(t, ok)
	assert.Equal(t, "Ognjen Adzic", got.Author.Name)
}

func TestListingOrder(t *testing.T) {
	r := newTestResolver(testCollection())
	ctx := context.Background()

	all, err := r.AllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].PublishedDate.After(all[i-1].PublishedDate), "posts out of order at %d", i)
	}

	featured, err := r.FeaturedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "first-steps", featured[0].Slug)
	assert.Equal(t, "winter-recap", featured[1].Slug)

	slugs := map[string]bool{}
	for _, p := range all {
		slugs[p.Slug] = true
	}
	for _, p := range featured {
		assert.True(t, p.Featured)
		assert.True(t, slugs[p.Slug], "featured post %s missing from listing", p.Slug)
	}
}

func TestListingOrderByDate(t *testing.T) {
	fsys := fstest.MapFS{
		"content/posts/a.mdoc": postFile("A", "2024-01-01", ""),
		"content/posts/b.mdoc": postFile("B", "2024-06-01", ""),
		"content/posts/c.mdoc": postFile("C", "2023-12-01", ""),
		"content/posts/d.mdoc": postFile("D", "2024-01-01", ""),
	}
	all, err := newTestResolver(fsys).AllPosts(context.Background())
	require.NoError(t, err)

	var got []string
	for _, p := range all {
		got = append(got, p.Slug)
	}
	assert.Equal(t, []string{"b", "a", "d", "c"}, got)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), all[0].PublishedDate)
}

func TestPostContent(t *testing.T) {
	r := newTestResolver(testCollection())

	got, ok := r.ResolvePost(context.Background(), "first-steps")
	require.True(t, ok)
	body, err := got.Content(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "# First Steps\n\nBody of First Steps", body)
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "Body text", ExtractBody("---\ntitle: x\n---\nBody text"))
	assert.Equal(t, "Body text", ExtractBody("---\ntitle: x\n---\n\n  Body text \n"))

	plain := "  no delimiter here\n"
	assert.Equal(t, plain, ExtractBody(plain))
	assert.Equal(t, "--", ExtractBody("--"))
	assert.Equal(t, "---", ExtractBody("---"))
}

// fallbackStore serves entries from memory so the direct file read misses.
type fallbackStore struct {
	records []content.Record
	allErr  error
}

func (s fallbackStore) All(context.Context) ([]content.Record, error) {
	return s.records, s.allErr
}

func (s fallbackStore) Read(_ context.Context, slug string) (*content.Entry, error) {
	for _, rec := range s.records {
		if rec.Slug == slug {
			return rec.Entry, nil
		}
	}
	return nil, content.ErrNotFound
}

func TestPostContentFallsBackToStore(t *testing.T) {
	published := &content.Date{Time: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)}
	store := fallbackStore{records: []content.Record{
		{Slug: "memory", Entry: content.NewEntry("Memory", published, "From the store")},
	}}
	r := NewResolver(store, WithFS(fstest.MapFS{}, "content/posts", ".mdoc"))

	got, ok := r.ResolvePost(context.Background(), "memory")
	require.True(t, ok)
	body, err := got.Content(context.Background())
	require.NoError(t, err)
	assert.Contains(t, body, "From the store")
}

func TestResolvePostStoreError(t *testing.T) {
	r := NewResolver(fallbackStore{allErr: errors.New("disk on fire")})

	_, ok := r.ResolvePost(context.Background(), "anything")
	assert.False(t, ok)

	_, err := r.AllPosts(context.Background())
	assert.Error(t, err)
}

func TestResolvePostFirstMatchWins(t *testing.T) {
	published := &content.Date{Time: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)}
	store := fallbackStore{records: []content.Record{
		{Slug: "Go Tips", Entry: content.NewEntry("Upper", published, "")},
		{Slug: "go tips", Entry: content.NewEntry("Lower", published, "")},
	}}
	r := NewResolver(store)

	got, ok := r.ResolvePost(context.Background(), "GO-TIPS")
	require.True(t, ok)
	assert.Equal(t, "Go Tips", got.Slug)
	assert.Equal(t, "Upper", got.Title)
}
