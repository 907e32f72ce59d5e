package firstorder

import (
	"reflect"
	"testing"

	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

func testSample() *types.Sample {
	tokens := []types.Token{
		{Form: "the", Lemma: "the", CPOS: "D", POS: "DT"},
		{Form: "dogs", Lemma: "dog", CPOS: "N", POS: "NNS"},
		{Form: "barked", Lemma: "bark", CPOS: "V", POS: "VBD"},
	}
	return types.NewSample(tokens, []int{2, 3, 0}, []string{"det", "nsubj", "root"})
}

func TestParseFeatureElement(t *testing.T) {
	element, err := ParseFeatureElement("h-1|w|p")
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if element.Address != 'h' || element.Offset != -1 || !reflect.DeepEqual(element.Attributes, []string{"w", "p"}) {
		t.Errorf("Got %+v", element)
	}
	element, err = ParseFeatureElement("b|cp")
	if err != nil || !element.IsGenerator {
		t.Errorf("Got %+v, %v expected a generator", element, err)
	}
	for _, bad := range []string{"h", "x|w", "h|zz", "hx|w", "b1|p", "m|w0", "|p"} {
		if _, err := ParseFeatureElement(bad); err == nil {
			t.Errorf("Expected an error for %q", bad)
		}
	}
}

func TestParseFeatureTemplate(t *testing.T) {
	template, err := ParseFeatureTemplate("h|w + m1|p")
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if template.ConfStr != "h|w+m1|p" || len(template.Elements) != 2 || template.Elements[1].Offset != 1 {
		t.Errorf("Got %+v", template)
	}
	if _, err := ParseFeatureTemplate("b|p+b|w"); err == nil {
		t.Error("Expected an error for two between elements")
	}
	if _, err := ParseFeatureTemplate(""); err == nil {
		t.Error("Expected an error for an empty template")
	}
}

func TestLoadFeatureConf(t *testing.T) {
	setup, err := LoadFeatureConf([]byte("feature groups:\n  - group: a\n    features:\n      - h|w\n      - m|p\n  - group: b\n    features: [h|p+m|p]\n"))
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	if setup.NumFeatures() != 3 || setup.FeatureGroups[1].Group != "b" {
		t.Errorf("Got %+v", setup)
	}
	if _, err := LoadFeatureConf([]byte("feature groups: []\n")); err == nil {
		t.Error("Expected an error for an empty setup")
	}
	if _, err := LoadFeatureConf([]byte("feature groups: [")); err == nil {
		t.Error("Expected an error for malformed yaml")
	}
	if DefaultFeatureSetup().NumFeatures() == 0 {
		t.Error("Default setup is empty")
	}
}

func TestExtractorFeatures(t *testing.T) {
	setup := &FeatureSetup{FeatureGroups: []FeatureGroup{{"test", []string{"h|w+m|p", "h-1|p", "m|w3"}}}}
	x, err := NewExtractor(setup)
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	s := testSample()
	expected := []string{
		"h|w+m|p:dogs|DT", "h|w+m|p:dogs|DT&L&1",
		"h-1|p:DT", "h-1|p:DT&L&1",
		"m|w3:the", "m|w3:the&L&1",
	}
	if feats := x.Features(s, 2, 1); !reflect.DeepEqual(feats, expected) {
		t.Errorf("Got %v expected %v", feats, expected)
	}
	expected = []string{
		"h|w+m|p:<root>|VBD", "h|w+m|p:<root>|VBD&R&3",
		"h-1|p:<none>", "h-1|p:<none>&R&3",
		"m|w3:bar", "m|w3:bar&R&3",
	}
	if feats := x.FeatureFunc(s)(0, 3); !reflect.DeepEqual(feats, expected) {
		t.Errorf("Got %v expected %v", feats, expected)
	}
}

func TestExtractorBetween(t *testing.T) {
	x, err := NewExtractor(&FeatureSetup{FeatureGroups: []FeatureGroup{{"between", []string{"h|p+b|cp+m|p"}}}})
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	s := testSample()
	expected := []string{
		"h|p+b|cp+m|p:<root>|D|VBD", "h|p+b|cp+m|p:<root>|D|VBD&R&3",
		"h|p+b|cp+m|p:<root>|N|VBD", "h|p+b|cp+m|p:<root>|N|VBD&R&3",
	}
	if feats := x.Features(s, 0, 3); !reflect.DeepEqual(feats, expected) {
		t.Errorf("Got %v expected %v", feats, expected)
	}
	if feats := x.Features(s, 2, 3); len(feats) != 0 {
		t.Errorf("Adjacent attachment got between features %v", feats)
	}
}

func TestDistanceBin(t *testing.T) {
	cases := []struct {
		head, mod int
		bin       string
	}{
		{0, 1, "1"},
		{3, 1, "2"},
		{0, 5, "5"},
		{6, 0, "5+"},
		{0, 9, "5+"},
		{0, 10, "10+"},
		{40, 2, "10+"},
	}
	for _, c := range cases {
		if bin := DistanceBin(c.head, c.mod); bin != c.bin {
			t.Errorf("Distance %d-%d got bin %v expected %v", c.head, c.mod, bin, c.bin)
		}
	}
	if Direction(1, 2) != "R" || Direction(2, 1) != "L" {
		t.Error("Wrong attachment direction")
	}
}

func TestTemplateValues(t *testing.T) {
	features := []string{
		"m|p:NNS", "m|p:NNS&L&1", "m|p:DT&R&5+", "m|w|p:dogs|NNS",
		"h|p:<root>", "m|p:<none>&L&2", "h|p+m|p:VBD|NNS",
	}
	values := TemplateValues(features, "m|p")
	if !reflect.DeepEqual(values, []string{"DT", "NNS"}) {
		t.Errorf("Got values %v expected [DT NNS]", values)
	}
	if values := TemplateValues(features, "h|p"); len(values) != 0 {
		t.Errorf("Expected no values, got %v", values)
	}
}
