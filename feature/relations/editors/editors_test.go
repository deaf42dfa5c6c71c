package editors

import (
	"testing"

	"content-relations/core/reconcile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	docKey    = uuid.MustParse("4fb4a1e8-f8f4-47b1-b9d8-b2cfb2c4cd41")
	mediaKey  = uuid.MustParse("9ef1ba3c-0f3b-4a4e-8b07-3c0f58d2f0a1")
	memberKey = uuid.MustParse("1b6f0a5e-7c8d-4e21-9a3b-5d4c3b2a1f00")

	docUdi    = reconcile.NewUdi(reconcile.EntityTypeDocument, docKey)
	mediaUdi  = reconcile.NewUdi(reconcile.EntityTypeMedia, mediaKey)
	memberUdi = reconcile.NewUdi(reconcile.EntityTypeMember, memberKey)
)

func TestSingleUdiPicker(t *testing.T) {
	picker := SingleUdiPicker{Alias: RelatedDocumentAlias}

	assert.Equal(t,
		[]reconcile.Reference{{Target: docUdi, RelationTypeAlias: RelatedDocumentAlias}},
		picker.GetReferences(docUdi.String()),
	)
	assert.Empty(t, picker.GetReferences(nil))
	assert.Empty(t, picker.GetReferences("   "))
	assert.Empty(t, picker.GetReferences("1234"))

	_, err := picker.ParseReferences("1234")
	assert.Error(t, err)
	assert.Equal(t, []string{RelatedDocumentAlias}, picker.AutomaticRelationTypes())
}

func TestMediaPicker(t *testing.T) {
	picker := MediaPicker{}

	tests := []struct {
		name    string
		value   any
		want    []reconcile.Reference
		wantErr bool
	}{
		{
			name:  "JSON items",
			value: `[{"key":"00000000-0000-0000-0000-000000000001","mediaKey":"` + mediaKey.String() + `"}]`,
			want:  []reconcile.Reference{{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias}},
		},
		{
			name:  "Legacy UDI list",
			value: mediaUdi.String() + ",",
			want:  []reconcile.Reference{{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias}},
		},
		{
			name:  "Legacy UDI list skips other entity types",
			value: docUdi.String() + "," + mediaUdi.String() + "," + memberUdi.String(),
			want:  []reconcile.Reference{{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias}},
		},
		{name: "Empty array", value: `[]`, want: []reconcile.Reference{}},
		{name: "Broken JSON", value: `[{"mediaKey":`, wantErr: true},
		{name: "Bad media key", value: `[{"mediaKey":"nope"}]`, wantErr: true},
		{name: "Empty", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := picker.ParseReferences(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, picker.GetReferences(tt.value))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiNodePicker(t *testing.T) {
	picker := MultiNodePicker{}
	value := docUdi.String() + ", " + mediaUdi.String() + "," + memberUdi.String()

	assert.Equal(t, []reconcile.Reference{
		{Target: docUdi, RelationTypeAlias: RelatedDocumentAlias},
		{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias},
		{Target: memberUdi, RelationTypeAlias: RelatedMemberAlias},
	}, picker.GetReferences(value))

	// Unknown entity types are emitted without an alias.
	other := reconcile.NewUdi("document-type", docKey)
	assert.Equal(t, []reconcile.Reference{{Target: other}}, picker.GetReferences(other.String()))

	assert.Empty(t, picker.GetReferences(docUdi.String()+",garbage"))
	assert.ElementsMatch(t, AutomaticAliases, picker.AutomaticRelationTypes())
}

func TestUrlPicker(t *testing.T) {
	picker := UrlPicker{}
	value := `[
		{"udi":"` + docUdi.String() + `","name":"Home"},
		{"url":"https://example.com","name":"External"},
		{"udi":"` + mediaUdi.String() + `","name":"Brochure"}
	]`

	assert.Equal(t, []reconcile.Reference{
		{Target: docUdi, RelationTypeAlias: RelatedDocumentAlias},
		{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias},
	}, picker.GetReferences(value))

	assert.Empty(t, picker.GetReferences(`not json`))
	assert.Empty(t, picker.GetReferences(`[{"udi":"umb://document/zz"}]`))
}

func TestRichTextEditor(t *testing.T) {
	editor := RichTextEditor{}

	html := `<p>See <a href="/{localLink:` + docUdi.String() + `}">page</a></p>` +
		`<img src="/media/a.png" data-udi="` + mediaUdi.String() + `" />`

	want := []reconcile.Reference{
		{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias},
		{Target: docUdi, RelationTypeAlias: RelatedDocumentAlias},
	}

	t.Run("HTML", func(t *testing.T) {
		assert.ElementsMatch(t, want, editor.GetReferences(html))
	})

	t.Run("JSON envelope", func(t *testing.T) {
		value := map[string]any{"markup": html, "blocks": nil}
		assert.ElementsMatch(t, want, editor.GetReferences(value))
	})

	t.Run("Malformed sibling", func(t *testing.T) {
		value := html + `<img data-udi="umb://media/broken" />`
		refs, err := editor.ParseReferences(value)
		assert.Error(t, err)
		assert.ElementsMatch(t, want, refs)
	})

	t.Run("Plain text", func(t *testing.T) {
		assert.Empty(t, editor.GetReferences("<p>no links</p>"))
	})
}

func TestRegistry(t *testing.T) {
	registry := Default()

	factory, ok := registry.ReferenceFactory(RichText)
	assert.True(t, ok)
	assert.NotNil(t, factory)

	_, ok = registry.ReferenceFactory(TextBox)
	assert.False(t, ok, "editor without capability")

	_, ok = registry.ReferenceFactory("Custom.Unknown")
	assert.False(t, ok)

	assert.NotContains(t, registry.Factories(), TextBox)
	assert.Contains(t, registry.Aliases(), TextBox)
	assert.Len(t, registry.Factories(), 7)
}

func TestExtractor_ExtractReferences(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	extractor := NewExtractor(zap.New(core))

	properties := []reconcile.Property{
		{Alias: "hero", EditorAlias: MediaPicker3, Value: `[{"mediaKey":"` + mediaKey.String() + `"}]`},
		{Alias: "body", EditorAlias: RichText, Value: `<img data-udi="` + mediaUdi.String() + `">`},
		{Alias: "related", EditorAlias: ContentPicker, Value: docUdi.String()},
		{Alias: "author", EditorAlias: MemberPicker, Value: "garbage"},
		{Alias: "title", EditorAlias: TextBox, Value: docUdi.String()},
		{Alias: "custom", EditorAlias: "Custom.Unknown", Value: docUdi.String()},
	}

	refs, automatic := extractor.ExtractReferences(properties, Default())

	// The media reference from the picker and the rich text collapse into one.
	assert.Len(t, refs, 2)
	assert.Contains(t, refs, reconcile.Reference{Target: mediaUdi, RelationTypeAlias: RelatedMediaAlias})
	assert.Contains(t, refs, reconcile.Reference{Target: docUdi, RelationTypeAlias: RelatedDocumentAlias})

	assert.Equal(t, []string{RelatedDocumentAlias, RelatedMediaAlias, RelatedMemberAlias}, automatic.Sorted())

	parseLogs := logs.FilterMessage("Could not parse property value").All()
	require.Len(t, parseLogs, 1)
	assert.Equal(t, "author", parseLogs[0].ContextMap()["property"])
}

func TestExtractor_NoFactories(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TextBox, nil)

	refs, automatic := NewExtractor(nil).ExtractReferences([]reconcile.Property{
		{Alias: "title", EditorAlias: TextBox, Value: "hello"},
	}, registry)

	assert.Empty(t, refs)
	assert.Empty(t, automatic)
}
