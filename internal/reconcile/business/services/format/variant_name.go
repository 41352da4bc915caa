// Package format builds the human-readable label distinguishing one
// purchasable variant from its siblings.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"catalogsync_api/config/values"
	supplierresponse "catalogsync_api/internal/supplier/business/models/dto/response"
)

const skuPrefix = "SKU "

// VariantNameFormatter renders deterministic variant labels. Category names
// are threaded explicitly through every call; there is no shared state
// between unrelated product reconciliations.
type VariantNameFormatter struct {
	caser         cases.Caser
	optionName    string
	modelKeywords []string
	symbols       map[string]string
}

func NewVariantNameFormatter(vals values.SyncValues) *VariantNameFormatter {
	tag, err := language.Parse(vals.LabelLocale)
	if err != nil {
		tag = language.Bulgarian
	}
	return &VariantNameFormatter{
		caser:         cases.Upper(tag),
		optionName:    vals.OptionName,
		modelKeywords: vals.ModelKeywords,
		symbols:       vals.AttributeSymbols,
	}
}

// OptionName is the single variant-distinguishing option this domain uses.
func (f *VariantNameFormatter) OptionName() string {
	return f.optionName
}

// Format renders one variant's label. Returns "" when no distinguishing
// attribute survives filtering; the caller decides what that means
// (single-variant: no option needed, multi-variant: fall back to the SKU).
// Formatting never fails.
func (f *VariantNameFormatter) Format(attrs []supplierresponse.Attribute, categoryNames []string) string {
	var modelFirst, rest []supplierresponse.Attribute
	for _, attr := range attrs {
		if attr.Name == "" && attr.Value == "" {
			continue
		}
		// category echoes are not distinguishing attributes
		if echoesCategory(attr.Name, categoryNames) || echoesCategory(attr.Value, categoryNames) {
			continue
		}
		if f.isModelKeyword(attr.Name) {
			modelFirst = append(modelFirst, attr)
		} else {
			rest = append(rest, attr)
		}
	}

	parts := make([]string, 0, len(modelFirst)+len(rest))
	for _, attr := range append(modelFirst, rest...) {
		parts = append(parts, f.render(attr))
	}
	return strings.Trim(strings.Join(parts, " / "), " /")
}

// FormatAll labels every variant of one product. Empty labels fall back to
// the variant SKU when the product has more than one variant. If any two
// labels collide, ALL labels are reprefixed with the variant SKU; partial
// disambiguation is never applied.
func (f *VariantNameFormatter) FormatAll(variants []supplierresponse.Variant, categoryNames []string) []string {
	labels := make([]string, len(variants))
	for i, v := range variants {
		labels[i] = f.Format(v.Attributes, categoryNames)
		if labels[i] == "" && len(variants) > 1 {
			labels[i] = v.Sku
		}
	}

	seen := make(map[string]int, len(labels))
	collision := false
	for _, label := range labels {
		if label == "" {
			continue
		}
		seen[label]++
		if seen[label] > 1 {
			collision = true
			break
		}
	}
	if collision {
		for i, v := range variants {
			labels[i] = skuPrefix + v.Sku + ": " + labels[i]
		}
	}
	return labels
}

func (f *VariantNameFormatter) render(attr supplierresponse.Attribute) string {
	name := f.normalizeSymbols(strings.TrimSpace(attr.Name))
	value := strings.TrimSpace(attr.Value)
	if name == "" {
		return value
	}
	if value == "" {
		return f.caser.String(name)
	}
	return f.caser.String(name) + " " + value
}

func (f *VariantNameFormatter) normalizeSymbols(name string) string {
	for raw, display := range f.symbols {
		name = strings.ReplaceAll(name, raw, display)
	}
	return name
}

func (f *VariantNameFormatter) isModelKeyword(name string) bool {
	folded := strings.ToLower(name)
	for _, kw := range f.modelKeywords {
		if strings.Contains(folded, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// echoesCategory: case-insensitive, either-direction substring match against
// any of the product's own category names.
func echoesCategory(s string, categoryNames []string) bool {
	folded := strings.ToLower(strings.TrimSpace(s))
	if folded == "" {
		return false
	}
	for _, name := range categoryNames {
		cat := strings.ToLower(strings.TrimSpace(name))
		if cat == "" {
			continue
		}
		if strings.Contains(folded, cat) || strings.Contains(cat, folded) {
			return true
		}
	}
	return false
}
