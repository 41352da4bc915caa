package imagekey

import (
	"testing"
)

func TestResolveEquivalenceAcrossDecorations(t *testing.T) {
	base := "lace-bodysuit-front.jpg"
	decorated := []string{
		base,
		"lace-bodysuit-front.jpeg",
		"lace-bodysuit-front_0bc619b2-4f01-4c9e-8a2f-3b9d2c1e7a44.jpg",
		"https://cdn.storefront.example/files/lace-bodysuit-front_0bc619b2-4f01-4c9e-8a2f-3b9d2c1e7a44.jpg?v=1716243",
		"lace-bodysuit-front_d41d8cd98f00b204e9800998ecf8427e.jpg",
		"https://supplier.example/media/products/lace-bodysuit-front_d41d8cd98f00b204e9800998ecf8427e.jpeg",
		"LACE-Bodysuit-Front.JPG",
	}

	want, ok := Resolve(base)
	if !ok {
		t.Fatalf("Resolve(%q) not ok", base)
	}
	for _, ref := range decorated {
		got, ok := Resolve(ref)
		if !ok {
			t.Fatalf("Resolve(%q) not ok", ref)
		}
		if got != want {
			t.Errorf("Resolve(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	refs := []string{
		"a_b_c.jpg",
		"hero_front_0bc619b2-4f01-4c9e-8a2f-3b9d2c1e7a44.jpeg",
		"d41d8cd98f00b204e9800998ecf8427e.jpg",
		"plain.png",
	}
	for _, ref := range refs {
		once, ok := Resolve(ref)
		if !ok {
			t.Fatalf("Resolve(%q) not ok", ref)
		}
		twice, ok := Resolve(once)
		if !ok {
			t.Fatalf("Resolve(%q) not ok", once)
		}
		if once != twice {
			t.Errorf("Resolve not idempotent for %q: %q != %q", ref, once, twice)
		}
	}
}

func TestResolveDistinguishesDifferentPictures(t *testing.T) {
	pairs := [][2]string{
		{"front.jpg", "back.jpg"},
		{"bodysuit-red.jpg", "bodysuit-black.jpg"},
		{"a.png", "a.jpg"},
	}
	for _, pair := range pairs {
		if Equal(pair[0], pair[1]) {
			t.Errorf("Equal(%q, %q) = true, want false", pair[0], pair[1])
		}
	}
}

func TestResolveRejectsBlankInput(t *testing.T) {
	for _, ref := range []string{"", "   ", "https://cdn.example.com/dir/"} {
		if key, ok := Resolve(ref); ok {
			t.Errorf("Resolve(%q) = %q, ok; want not ok", ref, key)
		}
	}
}

func TestResolveKeepsShortHexTokens(t *testing.T) {
	// real product names can contain short hex-looking words; only 32+ chars
	// count as a content hash
	a, _ := Resolve("deco_cafe.jpg")
	b, _ := Resolve("deco_face.jpg")
	if a == b {
		t.Fatalf("short hex-like tokens must be kept: %q == %q", a, b)
	}
	if a != "deco_cafe.jpg" {
		t.Fatalf("Resolve = %q, want deco_cafe.jpg", a)
	}
}
