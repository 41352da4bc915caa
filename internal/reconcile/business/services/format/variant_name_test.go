package format

import (
	"strings"
	"testing"

	"catalogsync_api/config/values"
	supplierresponse "catalogsync_api/internal/supplier/business/models/dto/response"
)

func newFormatter() *VariantNameFormatter {
	return NewVariantNameFormatter(values.DefaultSyncValues())
}

func attr(name, value string) supplierresponse.Attribute {
	return supplierresponse.Attribute{Name: name, Value: value}
}

func TestFormatRendersUppercasedNameAndValue(t *testing.T) {
	got := newFormatter().Format([]supplierresponse.Attribute{attr("Дължина", "20")}, nil)
	if got != "ДЪЛЖИНА 20" {
		t.Fatalf("Format = %q, want %q", got, "ДЪЛЖИНА 20")
	}
}

func TestFormatFiltersCategoryEchoes(t *testing.T) {
	categories := []string{"Бельо", "Боди"}
	attrs := []supplierresponse.Attribute{
		attr("Вид", "Боди с дантела"), // value echoes the category
		attr("Размер", "L"),
		attr("боди", "черно"), // name echoes the category
	}
	got := newFormatter().Format(attrs, categories)
	if got != "РАЗМЕР L" {
		t.Fatalf("Format = %q, want %q", got, "РАЗМЕР L")
	}
}

func TestFormatPutsModelAttributeFirst(t *testing.T) {
	attrs := []supplierresponse.Attribute{
		attr("Размер", "M"),
		attr("Модел", "2310"),
	}
	got := newFormatter().Format(attrs, nil)
	if got != "МОДЕЛ 2310 / РАЗМЕР M" {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatNormalizesDiameterSymbol(t *testing.T) {
	got := newFormatter().Format([]supplierresponse.Attribute{attr("ф на халката", "45мм")}, nil)
	if !strings.HasPrefix(got, "Ø") {
		t.Fatalf("Format = %q, want Ø prefix", got)
	}
}

func TestFormatEmptyWhenNothingDistinguishes(t *testing.T) {
	got := newFormatter().Format([]supplierresponse.Attribute{attr("Боди", "боди")}, []string{"Боди"})
	if got != "" {
		t.Fatalf("Format = %q, want empty", got)
	}
}

func TestFormatAllDisambiguatesAllOnCollision(t *testing.T) {
	variants := []supplierresponse.Variant{
		{Sku: "S1", Attributes: []supplierresponse.Attribute{attr("Размер", "L")}},
		{Sku: "S2", Attributes: []supplierresponse.Attribute{attr("Размер", "L")}},
		{Sku: "S3", Attributes: []supplierresponse.Attribute{attr("Размер", "XL")}},
	}
	labels := newFormatter().FormatAll(variants, nil)
	want := []string{
		"SKU S1: РАЗМЕР L",
		"SKU S2: РАЗМЕР L",
		"SKU S3: РАЗМЕР XL",
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestFormatAllNoPrefixWithoutCollision(t *testing.T) {
	variants := []supplierresponse.Variant{
		{Sku: "S1", Attributes: []supplierresponse.Attribute{attr("Размер", "S")}},
		{Sku: "S2", Attributes: []supplierresponse.Attribute{attr("Размер", "M")}},
		{Sku: "S3", Attributes: []supplierresponse.Attribute{attr("Размер", "L")}},
	}
	for i, label := range newFormatter().FormatAll(variants, nil) {
		if strings.HasPrefix(label, "SKU ") {
			t.Errorf("labels[%d] = %q unexpectedly SKU-prefixed", i, label)
		}
	}
}

func TestFormatAllFallsBackToSkuForMultiVariant(t *testing.T) {
	variants := []supplierresponse.Variant{
		{Sku: "S1"},
		{Sku: "S2", Attributes: []supplierresponse.Attribute{attr("Размер", "M")}},
	}
	labels := newFormatter().FormatAll(variants, nil)
	if labels[0] != "S1" {
		t.Fatalf("labels[0] = %q, want SKU fallback", labels[0])
	}
	if labels[1] != "РАЗМЕР M" {
		t.Fatalf("labels[1] = %q", labels[1])
	}
}
