package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routegen/internal/content"
	"routegen/internal/models"
	"routegen/internal/routing"
)

func doc(id, model, url string, fields map[string]any) *models.Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return &models.Document{Metadata: models.Metadata{ID: id, ModelName: model, URLPath: url}, Fields: fields}
}

// siteGraph has a home page, a 7-post blog at 3 per page, a Spanish post,
// and a site config.
func siteGraph() *models.Graph {
	pages := []*models.Document{
		doc("home", models.ModelPage, "/", map[string]any{"title": "Home"}),
		doc("blog", models.ModelPostFeed, "/blog/", map[string]any{routing.PageSizeField: 3}),
	}
	var posts []*models.Document
	for i := 0; i < 7; i++ {
		posts = append(posts, doc(fmt.Sprintf("post-%d", i), models.ModelPost, "", map[string]any{
			"date": fmt.Sprintf("2024-01-%02d", i+1),
		}))
	}
	hola := doc("hola", models.ModelPost, "/blog/hola/", map[string]any{"locale": "es", "isFeatured": true})
	pages = append(pages, hola)
	objects := append(posts, hola, doc("config", models.ModelConfig, "", map[string]any{"title": "Site"}))
	return models.NewGraph(pages, objects)
}

func writeSnapshot(t *testing.T, g *models.Graph) string {
	t.Helper()
	data, err := json.Marshal(g)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newBuilder(t *testing.T, g *models.Graph) *Builder {
	t.Helper()
	r, err := routing.NewResolver(routing.Options{Locales: []string{"en-US", "es"}, DefaultLocale: "en-US"}, nil, nil)
	require.NoError(t, err)
	return &Builder{
		Source:    content.NewFileSource(writeSnapshot(t, g)),
		Resolver:  r,
		OutputDir: filepath.Join(t.TempDir(), "out"),
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestBuildWritesManifestAndProps(t *testing.T) {
	b := newBuilder(t, siteGraph())

	report, err := b.Build(context.Background())
	require.NoError(t, err)

	// home x2, blog pages 1-3, hola (es).
	assert.Equal(t, 6, report.Routes)
	assert.Empty(t, report.Warnings)
	assert.NotEmpty(t, report.Fingerprint)

	manifest := readJSON(t, filepath.Join(b.OutputDir, ManifestFile))
	assert.Equal(t, false, manifest["fallback"])
	assert.Len(t, manifest["paths"], 6)

	for _, rel := range []string{
		"index.json",
		"es/index.json",
		"blog/index.json",
		"blog/page/2/index.json",
		"blog/page/3/index.json",
		"es/blog/hola/index.json",
		ReportFile,
	} {
		assert.FileExists(t, filepath.Join(b.OutputDir, rel))
	}

	page3 := readJSON(t, filepath.Join(b.OutputDir, "blog", "page", "3", PropsFile))["page"].(map[string]any)
	assert.EqualValues(t, 3, page3["pageNumber"])
	assert.Equal(t, "/blog/page/2/", page3["previousPath"])
	assert.Nil(t, page3["nextPath"])
	assert.Len(t, page3["items"], 1)

	es := readJSON(t, filepath.Join(b.OutputDir, "es", PropsFile))
	assert.Equal(t, "es", es["site"].(map[string]any)["locale"])

	rep := readJSON(t, filepath.Join(b.OutputDir, ReportFile))
	assert.Equal(t, report.ID.String(), rep["id"])

	assert.NoDirExists(t, b.OutputDir+"_stage")
	assert.NoDirExists(t, b.OutputDir+".prev")
}

func readReport(t *testing.T, dir string) Report {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)
	var rep Report
	require.NoError(t, json.Unmarshal(data, &rep))
	return rep
}

func TestBuildReportRecordsDuration(t *testing.T) {
	b := newBuilder(t, siteGraph())
	report, err := b.Build(context.Background())
	require.NoError(t, err)

	onDisk := readReport(t, b.OutputDir)
	assert.Positive(t, report.Duration)
	assert.Equal(t, report.Duration, onDisk.Duration)
	assert.Equal(t, report.Routes, onDisk.Routes)
}

func TestBuildReplacesPreviousOutput(t *testing.T) {
	b := newBuilder(t, siteGraph())
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	stale := filepath.Join(b.OutputDir, "stale", PropsFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))

	_, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(b.OutputDir, ManifestFile))
}

func TestBuildFailureKeepsPreviousOutput(t *testing.T) {
	b := newBuilder(t, siteGraph())
	_, err := b.Build(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(b.OutputDir, ManifestFile))
	require.NoError(t, err)

	broken := siteGraph()
	broken.Pages[1].Fields[routing.PageSizeField] = 0
	b.Source = content.NewFileSource(writeSnapshot(t, broken))

	_, err = b.Build(context.Background())
	assert.ErrorIs(t, err, routing.ErrInvalidConfiguration)

	after, err := os.ReadFile(filepath.Join(b.OutputDir, ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoDirExists(t, b.OutputDir+"_stage")
}

func TestBuildRejectsCollisions(t *testing.T) {
	g := siteGraph()
	g.Pages = append(g.Pages, doc("home-2", models.ModelPage, "/", nil))
	b := newBuilder(t, g)

	_, err := b.Build(context.Background())
	assert.ErrorIs(t, err, routing.ErrRouteCollision)
	assert.NoDirExists(t, b.OutputDir)
}

func TestBuildRejectsPublicURLCollisions(t *testing.T) {
	// A default-locale page at /es/x/ and a Spanish page at /x/ share the
	// public URL /es/x/.
	g := models.NewGraph([]*models.Document{
		doc("a", models.ModelPost, "/es/x/", map[string]any{"locale": "en-US"}),
		doc("b", models.ModelPost, "/x/", map[string]any{"locale": "es"}),
	}, nil)
	b := newBuilder(t, g)

	_, err := b.Build(context.Background())
	assert.ErrorIs(t, err, routing.ErrRouteCollision)
}

func TestBuildReportsWarnings(t *testing.T) {
	g := siteGraph()
	g.Pages = append(g.Pages, doc("nowhere", models.ModelPage, "", nil))
	b := newBuilder(t, g)

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "nowhere")
}

type fakePublisher struct {
	dir   string
	files int
}

func (f *fakePublisher) Publish(_ context.Context, dir string) (int, error) {
	f.dir = dir
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			f.files++
		}
		return err
	})
	return f.files, err
}

func TestBuildPublishes(t *testing.T) {
	b := newBuilder(t, siteGraph())
	pub := &fakePublisher{}
	b.Publisher = pub

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, b.OutputDir, pub.dir)
	// manifest, report, and six props files.
	assert.Equal(t, 8, pub.files)
	assert.Equal(t, 8, report.Published)
	onDisk := readReport(t, b.OutputDir)
	assert.Equal(t, 8, onDisk.Published)
	assert.Positive(t, onDisk.Duration)
	assert.Equal(t, report.Duration, onDisk.Duration)
}

func TestBuildCancelled(t *testing.T) {
	b := newBuilder(t, siteGraph())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, b.OutputDir)
}
