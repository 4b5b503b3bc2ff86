package rod

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-rod/rod"

	"element-inspector/internal/domain/entity"
)

const activeElementJS = `() => {
	const el = document.activeElement;
	if (!el || el === document.body || el === document.documentElement) {
		return null;
	}
	return el;
}`

// BrowseMode: вкладка показывает загруженный документ (http/https/file, readyState=complete).
// Pass-through режим учитывается оболочкой, а не адаптером.
func (b *BrowserAdapter) BrowseMode(ctx context.Context) (bool, error) {
	if !b.IsReady() {
		return false, nil
	}

	p, cancel := b.client(ctx)
	defer cancel()

	info, err := p.Info()
	if err != nil {
		return false, fmt.Errorf("page info: %w", err)
	}
	u, err := url.Parse(info.URL)
	if err != nil {
		return false, nil
	}
	switch u.Scheme {
	case "http", "https", "file":
	default:
		return false, nil
	}

	res, err := p.Eval(`() => document.readyState`)
	if err != nil {
		return false, fmt.Errorf("ready state: %w", err)
	}
	return res.Value.Str() == "complete", nil
}

func (b *BrowserAdapter) DocumentURL(ctx context.Context) (string, error) {
	if !b.IsReady() {
		return "", entity.ErrNotAvailable
	}

	p, cancel := b.client(ctx)
	defer cancel()

	info, err := p.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %v: %w", err, entity.ErrNotAvailable)
	}
	if info.URL == "" {
		return "", entity.ErrNotAvailable
	}
	return info.URL, nil
}

func (b *BrowserAdapter) FocusedNode(ctx context.Context) (entity.NodeRef, bool, error) {
	if !b.IsReady() {
		return "", false, nil
	}

	p, cancel := b.client(ctx)
	defer cancel()

	obj, err := p.Evaluate(rod.Eval(activeElementJS).ByObject())
	if err != nil {
		return "", false, fmt.Errorf("active element: %w", err)
	}
	if obj.ObjectID == "" {
		return "", false, nil
	}

	el, err := p.ElementFromObject(obj)
	if err != nil {
		return "", false, fmt.Errorf("active element: %w", err)
	}
	node, err := el.Describe(0, false)
	if err != nil {
		return "", false, fmt.Errorf("describe active element: %w", err)
	}
	return refFromBackend(node.BackendNodeID), true, nil
}
