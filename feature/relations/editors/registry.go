package editors

import (
	"sort"
	"sync"

	"content-relations/core/reconcile"
)

// Built-in property editor aliases.
const (
	ContentPicker       = "Umbraco.ContentPicker"
	MemberPicker        = "Umbraco.MemberPicker"
	MediaPicker3        = "Umbraco.MediaPicker3"
	MultiNodeTreePicker = "Umbraco.MultiNodeTreePicker"
	MultiUrlPicker      = "Umbraco.MultiUrlPicker"
	RichText            = "Umbraco.RichText"
	TinyMCE             = "Umbraco.TinyMCE"
	TextBox             = "Umbraco.TextBox"
	TextArea            = "Umbraco.TextArea"
)

// Registry maps editor aliases to their optional reference capability.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	editors map[string]reconcile.ReferenceFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{editors: make(map[string]reconcile.ReferenceFactory)}
}

// Register adds or replaces an editor. A nil factory registers an editor
// that never reports references.
func (r *Registry) Register(editorAlias string, factory reconcile.ReferenceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editors[editorAlias] = factory
}

// ReferenceFactory implements reconcile.EditorRegistry.
func (r *Registry) ReferenceFactory(editorAlias string) (reconcile.ReferenceFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.editors[editorAlias]
	if !ok || factory == nil {
		return nil, false
	}
	return factory, true
}

// Factories implements reconcile.EditorRegistry.
func (r *Registry) Factories() map[string]reconcile.ReferenceFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]reconcile.ReferenceFactory, len(r.editors))
	for alias, factory := range r.editors {
		if factory != nil {
			out[alias] = factory
		}
	}
	return out
}

// Aliases returns every registered editor alias in lexical order.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.editors))
	for alias := range r.editors {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Default returns a registry holding the built-in editors.
func Default() *Registry {
	r := NewRegistry()
	r.Register(ContentPicker, SingleUdiPicker{Alias: RelatedDocumentAlias})
	r.Register(MemberPicker, SingleUdiPicker{Alias: RelatedMemberAlias})
	r.Register(MediaPicker3, MediaPicker{})
	r.Register(MultiNodeTreePicker, MultiNodePicker{})
	r.Register(MultiUrlPicker, UrlPicker{})
	r.Register(RichText, RichTextEditor{})
	r.Register(TinyMCE, RichTextEditor{})
	r.Register(TextBox, nil)
	r.Register(TextArea, nil)
	return r
}
