package pipeline

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/hierarchy"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

func sampleTree(t *testing.T) *hierarchy.Node[tree.Payload] {
	t.Helper()
	root, err := tree.ToHierarchy(tree.Node{
		ID: "root",
		Children: []tree.Node{
			{ID: "b", Value: 3},
			{ID: "a", Children: []tree.Node{
				{ID: "a1", Value: 1},
				{ID: "a2", Value: 5},
			}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func childIDs(n *hierarchy.Node[tree.Payload]) []string {
	var ids []string
	for _, c := range n.Children {
		ids = append(ids, c.Data.ID)
	}
	return ids
}

func TestValidateSort(t *testing.T) {
	tests := []struct {
		sort    string
		wantErr bool
	}{
		{"", false},
		{"value", false},
		{"height", false},
		{"name", true},
		{"VALUE", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidateSort(tt.sort)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSort(%q) error = %v, wantErr %v", tt.sort, err, tt.wantErr)
		}
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"native", false},
		{"dot", false},
		{"neato", false},
		{"circo", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if opts.Kind != layout.KindTree {
		t.Errorf("Kind = %q, want tree", opts.Kind)
	}
	if w, h := opts.Frame(); w != layout.DefaultWidth || h != layout.DefaultHeight {
		t.Errorf("frame = %vx%v", w, h)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != render.FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Engine != EngineNative {
		t.Errorf("Engine = %q", opts.Engine)
	}
	if opts.NodeRadius != render.DefaultNodeRadius || opts.PNGScale != DefaultPNGScale {
		t.Errorf("NodeRadius = %v, PNGScale = %v", opts.NodeRadius, opts.PNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	// Idempotent
	opts.Formats = []string{"gif"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call re-validated: %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts func() Options
		code errors.Code
	}{
		{"kind", func() Options { var o Options; o.Kind = "radial"; return o }, errors.ErrCodeInvalidLayout},
		{"tiling", func() Options { var o Options; o.Tiling = "spiral"; return o }, errors.ErrCodeInvalidTiling},
		{"format", func() Options { return Options{Formats: []string{"gif"}} }, errors.ErrCodeInvalidFormat},
		{"sort", func() Options { return Options{Sort: "name"} }, errors.ErrCodeInvalidInput},
		{"engine", func() Options { return Options{Engine: "circo"} }, errors.ErrCodeInvalidInput},
		{"radius", func() Options { return Options{NodeRadius: -1} }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts()
			err := opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Engine: EngineDot, ShowLabels: true}
	if got := opts.ArtifactKeyOpts(render.FormatSVG); got.Engine != EngineDot || !got.ShowLabels {
		t.Errorf("svg key opts = %+v", got)
	}
	if got := opts.ArtifactKeyOpts(render.FormatJSON); got.Engine != "" {
		t.Errorf("json key depends on engine: %+v", got)
	}
}

func TestPrepare(t *testing.T) {
	root := sampleTree(t)

	byValue := Prepare(root, SortValue)
	if got := strings.Join(childIDs(byValue), ","); got != "a,b" {
		t.Errorf("value order = %s, want a,b", got)
	}
	if got := strings.Join(childIDs(byValue.Children[0]), ","); got != "a2,a1" {
		t.Errorf("nested value order = %s, want a2,a1", got)
	}

	byHeight := Prepare(root, SortHeight)
	if got := strings.Join(childIDs(byHeight), ","); got != "b,a" {
		t.Errorf("height order = %s, want b,a", got)
	}

	unsorted := Prepare(root, SortNone)
	if got := strings.Join(childIDs(unsorted), ","); got != "b,a" {
		t.Errorf("unsorted order = %s", got)
	}

	// Input untouched
	if got := strings.Join(childIDs(root), ","); got != "b,a" {
		t.Errorf("input reordered: %s", got)
	}
	if root.Value != 0 {
		t.Errorf("input summed: %v", root.Value)
	}
}

func TestComputeLayout(t *testing.T) {
	l, err := ComputeLayout(sampleTree(t), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if l.Kind != layout.KindTree || l.Width != 800 || l.Height != 600 {
		t.Errorf("layout header = %s %vx%v", l.Kind, l.Width, l.Height)
	}
	if len(l.Nodes) != 5 || len(l.Links) != 4 {
		t.Fatalf("nodes = %d, links = %d", len(l.Nodes), len(l.Links))
	}
	for _, n := range l.Nodes {
		if n.Radius != render.DefaultNodeRadius {
			t.Errorf("%s radius = %v", n.ID, n.Radius)
		}
	}
	if l.ID == "" {
		t.Error("layout has no ID")
	}
}

func TestComputeLayoutTreemap(t *testing.T) {
	var opts Options
	opts.Kind = layout.KindTreemap
	opts.Width, opts.Height = layout.Float(100), layout.Float(50)

	l, err := ComputeLayout(sampleTree(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Links) != 0 {
		t.Errorf("treemap has %d links", len(l.Links))
	}
	root := l.Nodes[0]
	if root.Value != 9 || root.Width != 100 || root.Height != 50 || root.Radius != 0 {
		t.Errorf("root = %+v", root)
	}
}

func TestComputeLayoutFixed(t *testing.T) {
	root, _ := tree.ToHierarchy(tree.Node{ID: "r", Children: []tree.Node{{ID: "a"}, {ID: "b"}}})

	var opts Options
	opts.NodeWidth, opts.NodeHeight = 10, 20

	l, err := ComputeLayout(root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 10 || l.Height != 20 {
		t.Errorf("frame = %vx%v, want 10x20", l.Width, l.Height)
	}
}

func TestComputeLayoutErrors(t *testing.T) {
	if _, err := ComputeLayout(nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidTree) {
		t.Errorf("nil tree: got %v", err)
	}
	if _, err := ComputeLayout(sampleTree(t), Options{Sort: "name"}); err == nil {
		t.Error("expected error for bad sort")
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(sampleTree(t))
	if s.NodeCount != 5 || s.LeafCount != 3 || s.MaxDepth != 2 || s.TotalValue != 9 {
		t.Errorf("stats = %+v", s)
	}
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Errorf("nil stats = %+v", got)
	}
}

func TestRenderLayout(t *testing.T) {
	ctx := context.Background()
	l, err := ComputeLayout(sampleTree(t), Options{})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderLayout(ctx, l, Options{
		Formats:    []string{render.FormatSVG, render.FormatJSON, render.FormatDOT},
		ShowLabels: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("artifacts = %d", len(artifacts))
	}
	if !strings.Contains(string(artifacts[render.FormatSVG]), "<text") {
		t.Error("svg missing labels")
	}
	if !strings.HasPrefix(string(artifacts[render.FormatDOT]), "digraph G {") {
		t.Error("dot output malformed")
	}
	if _, err := tree.UnmarshalLayout(artifacts[render.FormatJSON]); err != nil {
		t.Errorf("json output: %v", err)
	}
}

func TestRenderLayoutGraphviz(t *testing.T) {
	l, err := ComputeLayout(sampleTree(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := RenderLayout(context.Background(), l, Options{Engine: EngineDot})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(artifacts[render.FormatSVG]), `viewBox="0 0 `) {
		t.Error("graphviz svg not normalized")
	}
}

func TestRenderLayoutEmpty(t *testing.T) {
	if _, err := RenderLayout(context.Background(), tree.Layout{}, Options{}); err == nil {
		t.Error("expected error for empty layout")
	}
}

// memCache is an in-memory cache.Cache that counts calls.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	sets    int
	failGet bool
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, stderrors.New("backend down")
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

type cacheRecorder struct {
	observability.NoopCacheHooks
	mu     sync.Mutex
	events []string
}

func (r *cacheRecorder) record(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *cacheRecorder) OnCacheHit(_ context.Context, keyType string)  { r.record("hit:" + keyType) }
func (r *cacheRecorder) OnCacheMiss(_ context.Context, keyType string) { r.record("miss:" + keyType) }
func (r *cacheRecorder) OnCacheSet(_ context.Context, keyType string, _ int) {
	r.record("set:" + keyType)
}
func (r *cacheRecorder) OnCacheError(_ context.Context, keyType string, _ error) {
	r.record("error:" + keyType)
}

func TestRunnerLayoutCache(t *testing.T) {
	ctx := context.Background()
	rec := &cacheRecorder{}
	observability.SetCacheHooks(rec)
	t.Cleanup(observability.Reset)

	c := newMemCache()
	r := NewRunner(c, nil, nil)
	root := sampleTree(t)

	first, hit, err := r.LayoutWithCacheInfo(ctx, root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first call hit the cache")
	}

	second, hit, err := r.LayoutWithCacheInfo(ctx, root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second call missed the cache")
	}
	if second.ID != first.ID {
		t.Errorf("cached layout ID = %s, want %s", second.ID, first.ID)
	}

	var other Options
	other.Kind = layout.KindCluster
	if _, hit, _ := r.LayoutWithCacheInfo(ctx, root, other); hit {
		t.Error("different options hit the cache")
	}

	if _, hit, _ := r.LayoutWithCacheInfo(ctx, root, Options{Refresh: true}); hit {
		t.Error("refresh served from cache")
	}

	want := []string{"miss:layout", "set:layout", "hit:layout", "miss:layout", "set:layout", "set:layout"}
	if strings.Join(rec.events, " ") != strings.Join(want, " ") {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestRunnerRenderCache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	l, err := r.Layout(ctx, sampleTree(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Formats: []string{render.FormatSVG, render.FormatDOT}}

	first, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first render hit the cache")
	}

	second, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second render missed the cache")
	}
	if string(first[render.FormatSVG]) != string(second[render.FormatSVG]) {
		t.Error("cached svg differs")
	}

	// Adding a format renders everything again.
	opts.Formats = append(opts.Formats, render.FormatJSON)
	if _, hit, _ := r.RenderWithCacheInfo(ctx, l, opts); hit {
		t.Error("partial cache reported as hit")
	}
}

func TestRunnerCacheErrors(t *testing.T) {
	c := newMemCache()
	c.failGet = true
	r := NewRunner(c, nil, nil)

	l, hit, err := r.LayoutWithCacheInfo(context.Background(), sampleTree(t), Options{})
	if err != nil {
		t.Fatalf("cache read error should not fail the layout: %v", err)
	}
	if hit || len(l.Nodes) != 5 {
		t.Errorf("hit = %v, nodes = %d", hit, len(l.Nodes))
	}
}

func TestRunnerLayoutNil(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Layout(context.Background(), nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidTree) {
		t.Errorf("got %v", err)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	root := sampleTree(t)

	var opts Options
	opts.Kind = layout.KindTreemap
	opts.Formats = []string{render.FormatSVG, render.FormatJSON}

	result, err := r.Execute(ctx, root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Stats.NodeCount != 5 || result.Stats.TotalValue != 9 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.TreeHash == "" {
		t.Error("missing tree hash")
	}
	if len(result.Artifacts) != 2 {
		t.Errorf("artifacts = %d", len(result.Artifacts))
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("cold run cache info = %+v", result.CacheInfo)
	}

	again, err := r.Execute(ctx, root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("warm run cache info = %+v", again.CacheInfo)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), sampleTree(t), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v", err)
	}
}
