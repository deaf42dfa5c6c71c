package editors

import (
	"encoding/json"
	"fmt"
	"strings"

	"content-relations/core/reconcile"
	"content-relations/core/utils"

	"github.com/google/uuid"
)

// referenceParser is implemented by factories that can explain why a value
// yielded no references.
type referenceParser interface {
	ParseReferences(value any) ([]reconcile.Reference, error)
}

// SingleUdiPicker handles editors storing a single UDI string, such as the
// content and member pickers.
type SingleUdiPicker struct {
	// Alias is the relation type every reference is tracked under.
	Alias string
}

func (p SingleUdiPicker) ParseReferences(value any) ([]reconcile.Reference, error) {
	raw := strings.TrimSpace(utils.ToString(value))
	if raw == "" {
		return nil, nil
	}
	udi, err := reconcile.ParseUdi(raw)
	if err != nil {
		return nil, err
	}
	return []reconcile.Reference{{Target: udi, RelationTypeAlias: p.Alias}}, nil
}

func (p SingleUdiPicker) GetReferences(value any) []reconcile.Reference {
	refs, _ := p.ParseReferences(value)
	return refs
}

func (p SingleUdiPicker) AutomaticRelationTypes() []string {
	return []string{p.Alias}
}

// MediaPicker handles the media picker's JSON value:
// [{"key":"<item key>","mediaKey":"<media key>"}].
// Legacy comma separated UDI values are accepted as well.
type MediaPicker struct{}

type mediaPickerItem struct {
	Key      string `json:"key"`
	MediaKey string `json:"mediaKey"`
}

func (MediaPicker) ParseReferences(value any) ([]reconcile.Reference, error) {
	raw := strings.TrimSpace(utils.ToString(value))
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "[") {
		refs, err := parseUdiList(raw, func(udi reconcile.Udi) string { return AliasFor(udi.EntityType) })
		if err != nil {
			return nil, err
		}
		// Legacy values only ever tracked media.
		media := refs[:0]
		for _, ref := range refs {
			if ref.RelationTypeAlias == RelatedMediaAlias {
				media = append(media, ref)
			}
		}
		return media, nil
	}

	var items []mediaPickerItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("invalid media picker value: %w", err)
	}

	refs := make([]reconcile.Reference, 0, len(items))
	for _, item := range items {
		key, err := uuid.Parse(item.MediaKey)
		if err != nil {
			return nil, fmt.Errorf("invalid media key %q: %w", item.MediaKey, err)
		}
		refs = append(refs, reconcile.Reference{
			Target:            reconcile.NewUdi(reconcile.EntityTypeMedia, key),
			RelationTypeAlias: RelatedMediaAlias,
		})
	}
	return refs, nil
}

func (p MediaPicker) GetReferences(value any) []reconcile.Reference {
	refs, _ := p.ParseReferences(value)
	return refs
}

func (MediaPicker) AutomaticRelationTypes() []string {
	return []string{RelatedMediaAlias}
}

// MultiNodePicker handles comma separated UDIs of mixed entity types.
type MultiNodePicker struct{}

func (MultiNodePicker) ParseReferences(value any) ([]reconcile.Reference, error) {
	return parseUdiList(utils.ToString(value), func(udi reconcile.Udi) string { return AliasFor(udi.EntityType) })
}

func (p MultiNodePicker) GetReferences(value any) []reconcile.Reference {
	refs, _ := p.ParseReferences(value)
	return refs
}

func (MultiNodePicker) AutomaticRelationTypes() []string {
	return AutomaticAliases
}

// UrlPicker handles the multi url picker's JSON value:
// [{"udi":"umb://document/...","url":"...","name":"..."}].
// External links carry no UDI and are ignored.
type UrlPicker struct{}

type urlPickerItem struct {
	Udi  string `json:"udi"`
	Url  string `json:"url"`
	Name string `json:"name"`
}

func (UrlPicker) ParseReferences(value any) ([]reconcile.Reference, error) {
	raw := strings.TrimSpace(utils.ToString(value))
	if raw == "" {
		return nil, nil
	}

	var items []urlPickerItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("invalid url picker value: %w", err)
	}

	var refs []reconcile.Reference
	for _, item := range items {
		if item.Udi == "" {
			continue
		}
		udi, err := reconcile.ParseUdi(item.Udi)
		if err != nil {
			return nil, err
		}
		refs = append(refs, referenceTo(udi))
	}
	return refs, nil
}

func (p UrlPicker) GetReferences(value any) []reconcile.Reference {
	refs, _ := p.ParseReferences(value)
	return refs
}

func (UrlPicker) AutomaticRelationTypes() []string {
	return AutomaticAliases
}

// parseUdiList parses comma separated UDIs. A malformed entry fails the whole value.
func parseUdiList(raw string, aliasOf func(reconcile.Udi) string) ([]reconcile.Reference, error) {
	var refs []reconcile.Reference
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		udi, err := reconcile.ParseUdi(part)
		if err != nil {
			return nil, err
		}
		refs = append(refs, reconcile.Reference{Target: udi, RelationTypeAlias: aliasOf(udi)})
	}
	return refs, nil
}
