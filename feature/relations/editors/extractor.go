package editors

import (
	"content-relations/core/reconcile"

	"go.uber.org/zap"
)

// Extractor implements reconcile.Extractor over an editor registry.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// ExtractReferences returns the references found in the properties and the
// union of the automatic aliases declared by every registered factory.
func (e *Extractor) ExtractReferences(properties []reconcile.Property, registry reconcile.EditorRegistry) (reconcile.ReferenceSet, reconcile.AliasSet) {
	refs := make(reconcile.ReferenceSet)
	automatic := reconcile.NewAliasSet()

	factories := registry.Factories()
	for _, factory := range factories {
		automatic.Add(factory.AutomaticRelationTypes()...)
	}

	for _, prop := range properties {
		factory, ok := factories[prop.EditorAlias]
		if !ok {
			continue
		}

		if parser, ok := factory.(referenceParser); ok {
			found, err := parser.ParseReferences(prop.Value)
			if err != nil {
				e.logger.Debug("Could not parse property value",
					zap.String("property", prop.Alias),
					zap.String("editor", prop.EditorAlias),
					zap.Error(err),
				)
			}
			refs.Add(found...)
			continue
		}

		refs.Add(factory.GetReferences(prop.Value)...)
	}

	return refs, automatic
}
