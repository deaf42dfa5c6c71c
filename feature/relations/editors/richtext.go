package editors

import (
	"encoding/json"
	"regexp"
	"strings"

	"content-relations/core/reconcile"
	"content-relations/core/utils"
)

var (
	dataUdiPattern   = regexp.MustCompile(`data-udi\s*=\s*["'](umb://[^"']+)["']`)
	localLinkPattern = regexp.MustCompile(`\{localLink:(umb://[^}]+)\}`)
)

// RichTextEditor extracts embedded media (data-udi attributes) and local links
// ({localLink:<udi>}) from rich text markup. The value is either raw HTML or
// the JSON envelope {"markup":"...","blocks":...}.
type RichTextEditor struct{}

type richTextValue struct {
	Markup string `json:"markup"`
}

func (RichTextEditor) ParseReferences(value any) ([]reconcile.Reference, error) {
	markup := strings.TrimSpace(utils.ToString(value))
	if markup == "" {
		return nil, nil
	}
	if strings.HasPrefix(markup, "{") {
		var envelope richTextValue
		if err := json.Unmarshal([]byte(markup), &envelope); err == nil {
			markup = envelope.Markup
		}
	}

	var refs []reconcile.Reference
	var firstErr error
	collect := func(pattern *regexp.Regexp) {
		for _, match := range pattern.FindAllStringSubmatch(markup, -1) {
			udi, err := reconcile.ParseUdi(match[1])
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			refs = append(refs, referenceTo(udi))
		}
	}
	collect(dataUdiPattern)
	collect(localLinkPattern)

	// Well-formed links are kept even when a sibling is malformed.
	return refs, firstErr
}

func (e RichTextEditor) GetReferences(value any) []reconcile.Reference {
	refs, _ := e.ParseReferences(value)
	return refs
}

func (RichTextEditor) AutomaticRelationTypes() []string {
	return []string{RelatedDocumentAlias, RelatedMediaAlias}
}
