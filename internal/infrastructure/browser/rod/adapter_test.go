package rod

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"element-inspector/internal/application/port/input"
	"element-inspector/internal/domain/entity"
	"element-inspector/internal/infrastructure/logger"
	"element-inspector/internal/usecase/inspect"
)

func newTestAdapter(t *testing.T) *BrowserAdapter {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests are skipped in -short mode")
	}

	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.NoSandbox = true

	adapter, err := NewBrowserAdapter(context.Background(), cfg)
	if err != nil {
		t.Skipf("browser not available: %v", err)
	}
	t.Cleanup(adapter.Close)
	return adapter
}

func serve(t *testing.T, page string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func openAndFocus(t *testing.T, adapter *BrowserAdapter, page, selector string) entity.NodeRef {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, adapter.Navigate(ctx, serve(t, page)))
	require.NoError(t, adapter.Focus(ctx, selector))

	ref, ok, err := adapter.FocusedNode(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	return ref
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultSlowMotion, int(cfg.SlowMotion))
	assert.False(t, cfg.NoSandbox, "Should be secure by default")
	assert.Empty(t, cfg.ControlURL)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"Empty URL", "", false},
		{"Invalid scheme", "ftp://example.com", false},
		{"JavaScript URL", "javascript:alert(1)", false},
		{"HTTP", "http://localhost:8080/", true},
		{"File", "file:///tmp/page.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestAttributeMap(t *testing.T) {
	attrs := attributeMap([]string{"ROLE", "tab", "tabindex", "0", "dangling"})

	assert.Equal(t, map[string]string{"role": "tab", "tabindex": "0"}, attrs)

	v, ok := intAttribute(attrs, "tabindex")
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = intAttribute(attrs, "role")
	assert.False(t, ok)
}

func TestBackendID(t *testing.T) {
	id, err := backendID("42")
	require.NoError(t, err)
	assert.Equal(t, entity.NodeRef("42"), refFromBackend(id))

	_, err = backendID("not-a-node")
	assert.ErrorIs(t, err, entity.ErrStaleNode)
}

func TestBrowserAdapter_IsReady(t *testing.T) {
	adapter := newTestAdapter(t)

	assert.True(t, adapter.IsReady())
	adapter.Close()
	assert.False(t, adapter.IsReady())
}

func TestBrowserAdapter_BrowseMode(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	on, err := adapter.BrowseMode(ctx)
	require.NoError(t, err)
	assert.False(t, on, "about:blank is not a browsable document")

	require.NoError(t, adapter.Navigate(ctx, serve(t, BasicHTML)))
	on, err = adapter.BrowseMode(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	docURL, err := adapter.DocumentURL(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(docURL, "http://127.0.0.1"), docURL)

	_, ok, err := adapter.FocusedNode(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "body focus counts as no focused element")
}

func TestBrowserAdapter_Navigate_InvalidURL(t *testing.T) {
	adapter := newTestAdapter(t)

	err := adapter.Navigate(context.Background(), "javascript:alert(1)")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestBrowserAdapter_ButtonFacts(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, FormHTML, "#submit")

	role, err := adapter.Role(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "button", role)

	name, err := adapter.Name(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "Submit", name)

	tag, err := adapter.Tag(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "button", tag)

	states, err := adapter.States(ctx, ref)
	require.NoError(t, err)
	assert.Contains(t, states, "focused")
	assert.Contains(t, states, "focusable")

	ti, err := adapter.TabIndex(ctx, ref)
	require.NoError(t, err)
	assert.False(t, ti.Exposed())

	_, err = adapter.XMLRoles(ctx, ref)
	assert.ErrorIs(t, err, entity.ErrNotAvailable)
}

func TestBrowserAdapter_DescribedBy(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, FormHTML, "#username")

	rels, err := adapter.Relationships(ctx, ref)
	require.NoError(t, err)

	var described []string
	for _, r := range rels {
		if r.Kind == entity.RelDescribedBy {
			described = r.Targets
		}
	}
	assert.Equal(t, []string{"#user-hint"}, described)

	desc, err := adapter.Description(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "Your e-mail address", desc)
}

func TestBrowserAdapter_TabIndexOnTab(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, TabsHTML, "#tab1")

	role, err := adapter.Role(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "tab", role)

	ti, err := adapter.TabIndex(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, entity.ExposedTabIndex(0), ti)

	roles, err := adapter.XMLRoles(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []string{"tab"}, roles)
}

func TestBrowserAdapter_InspectListItem(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, ListHTML, "#target")

	uc := inspect.New(adapter, logger.NewNop(), inspect.DefaultConfig())
	r := uc.Inspect(ctx, input.InspectRequest{BrowseMode: true, Focused: ref, HasFocus: true})

	chain, ok := r.Section(entity.SectionAncestors)
	require.True(t, ok, r.Text())
	require.GreaterOrEqual(t, len(chain.Lines), 2)
	assert.Contains(t, chain.Lines[0], "listitem")
	assert.Contains(t, chain.Lines[0], "<li>")
	assert.Contains(t, chain.Lines[1], "list <ul>")
	assert.NotContains(t, r.Text(), "#document")
	assert.NotContains(t, r.Text(), "RootWebArea")

	attrs, ok := r.Section(entity.SectionAttributes)
	require.True(t, ok)
	assert.Contains(t, attrs.Lines, "Tabindex: -1")
}

func TestBrowserAdapter_StaleReference(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, serve(t, BasicHTML)))

	_, err := adapter.Role(ctx, "999999")
	assert.Error(t, err)
}

func TestBrowserAdapter_LinkAttributes(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, LinksHTML, "#more")

	id, err := adapter.ID(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "more", id)

	classes, err := adapter.Classes(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []string{"nav", "external"}, classes)

	u, err := adapter.URL(ctx, ref)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://"), u)
	assert.True(t, strings.HasSuffix(u, "/docs"), u)

	_, err = adapter.Level(ctx, ref)
	assert.ErrorIs(t, err, entity.ErrNotAvailable)
}

func TestBrowserAdapter_HeadingLevelAndInputType(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, LinksHTML, "#intro")

	level, err := adapter.Level(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	_, err = adapter.URL(ctx, ref)
	assert.ErrorIs(t, err, entity.ErrNotAvailable)

	require.NoError(t, adapter.Focus(ctx, "#email"))
	field, ok, err := adapter.FocusedNode(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	typ, err := adapter.InputType(ctx, field)
	require.NoError(t, err)
	assert.Equal(t, "email", typ)
}

func TestBrowserAdapter_ChainSkipsIgnoredWrappers(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	ref := openAndFocus(t, adapter, LinksHTML, "#more")

	uc := inspect.New(adapter, logger.NewNop(), inspect.DefaultConfig())
	r := uc.Inspect(ctx, input.InspectRequest{BrowseMode: true, Focused: ref, HasFocus: true})

	assert.NotContains(t, r.Text(), "<body>")
	assert.NotContains(t, r.Text(), "<html>")
	assert.NotContains(t, r.Text(), "(no exposed facts)")
}
