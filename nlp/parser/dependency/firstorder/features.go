package firstorder

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
	"github.com/louiezzang/yg-nlp-sub000/util"

	"gopkg.in/yaml.v2"
)

const (
	FEATURE_SEPARATOR   = "+" // separates multiple attribute sources
	ATTRIBUTE_SEPARATOR = "|" // separates attributes in a source
	TEMPLATE_PREFIX     = ":" // output separator
	GENERIC_SEPARATOR   = "|" // output separator
	CONJUNCT_SEPARATOR  = "&" // separates a feature from its direction and distance

	NONE_VALUE = "<none>"
	ROOT_VALUE = "<root>"

	APPROX_FEATURES = 64
)

type FeatureGroup struct {
	Group    string
	Features []string
}

type FeatureSetup struct {
	FeatureGroups []FeatureGroup `yaml:"feature groups"`
}

func (s *FeatureSetup) NumFeatures() int {
	var numFeatures int
	for _, group := range s.FeatureGroups {
		numFeatures += len(group.Features)
	}
	return numFeatures
}

func LoadFeatureConf(conf []byte) (*FeatureSetup, error) {
	setup := new(FeatureSetup)
	if err := yaml.Unmarshal(conf, setup); err != nil {
		return nil, fmt.Errorf("parsing feature setup: %w", err)
	}
	if setup.NumFeatures() == 0 {
		return nil, errors.New("feature setup defines no features")
	}
	return setup, nil
}

func LoadFeatureConfFile(filename string) (*FeatureSetup, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadFeatureConf(data)
}

// DEFAULT_FEATURES is the setup used when no feature file is given: lexical
// and tag unigrams and bigrams of the attachment, surrounding tags and the
// tags found between head and modifier.
const DEFAULT_FEATURES = `
feature groups:
  - group: unigram
    features:
      - h|w
      - h|p
      - h|w|p
      - h|w5
      - m|w
      - m|p
      - m|w|p
      - m|w5
  - group: bigram
    features:
      - h|w|p+m|w|p
      - h|p+m|w|p
      - h|w+m|w|p
      - h|w|p+m|p
      - h|w|p+m|w
      - h|w+m|w
      - h|p+m|p
      - h|cp+m|cp
  - group: surrounding
    features:
      - h|p+h1|p+m-1|p+m|p
      - h-1|p+h|p+m-1|p+m|p
      - h|p+h1|p+m|p+m1|p
      - h-1|p+h|p+m|p+m1|p
  - group: between
    features:
      - h|p+b|p+m|p
`

func DefaultFeatureSetup() *FeatureSetup {
	setup, err := LoadFeatureConf([]byte(DEFAULT_FEATURES))
	if err != nil {
		panic("Default feature setup is broken: " + err.Error())
	}
	return setup
}

// FeatureTemplateElement is one attribute source of a template: a sentence
// position relative to the head or modifier (or every position between
// them) and the attributes read at that position.
type FeatureTemplateElement struct {
	Address     byte
	Offset      int
	Attributes  []string
	ConfStr     string
	IsGenerator bool
}

type FeatureTemplate struct {
	Elements []FeatureTemplateElement
	ConfStr  string
}

func (f FeatureTemplate) String() string {
	return f.ConfStr
}

func ParseFeatureElement(featElementStr string) (*FeatureTemplateElement, error) {
	elementParts := strings.Split(featElementStr, ATTRIBUTE_SEPARATOR)
	if len(elementParts) < 2 {
		return nil, errors.New("Not enough parts for element " + featElementStr)
	}
	address := elementParts[0]
	if len(address) == 0 {
		return nil, errors.New("Missing address for element " + featElementStr)
	}
	element := &FeatureTemplateElement{
		Address:    address[0],
		ConfStr:    featElementStr,
		Attributes: elementParts[1:],
	}
	switch element.Address {
	case 'h', 'm':
		if len(address) > 1 {
			offset, err := strconv.Atoi(address[1:])
			if err != nil {
				return nil, fmt.Errorf("Bad offset in element %s: %w", featElementStr, err)
			}
			element.Offset = offset
		}
	case 'b':
		if len(address) > 1 {
			return nil, fmt.Errorf("Between address takes no offset in element %s", featElementStr)
		}
		element.IsGenerator = true
	default:
		return nil, fmt.Errorf("Unknown address %q in element %s", address, featElementStr)
	}
	for _, attr := range element.Attributes {
		if !validAttribute(attr) {
			return nil, fmt.Errorf("Unknown attribute %q in element %s", attr, featElementStr)
		}
	}
	return element, nil
}

func validAttribute(attr string) bool {
	switch attr {
	case "w", "l", "p", "cp", "f":
		return true
	}
	if len(attr) > 1 && attr[0] == 'w' {
		n, err := strconv.Atoi(attr[1:])
		return err == nil && n > 0
	}
	return false
}

func ParseFeatureTemplate(featTemplateStr string) (*FeatureTemplate, error) {
	// remove any spaces
	featTemplateStr = strings.Replace(featTemplateStr, " ", "", -1)
	if len(featTemplateStr) == 0 {
		return nil, errors.New("Empty feature template")
	}
	features := strings.Split(featTemplateStr, FEATURE_SEPARATOR)
	template := &FeatureTemplate{
		Elements: make([]FeatureTemplateElement, len(features)),
		ConfStr:  featTemplateStr,
	}
	var generators int
	for i, featElementStr := range features {
		element, err := ParseFeatureElement(featElementStr)
		if err != nil {
			return nil, err
		}
		if element.IsGenerator {
			generators++
		}
		template.Elements[i] = *element
	}
	if generators > 1 {
		return nil, fmt.Errorf("Template %s has more than one between element", featTemplateStr)
	}
	return template, nil
}

// Extractor renders the templates of a feature setup for a (head, modifier)
// pair of a sample. Every template yields its plain value and the same value
// conjoined with the attachment direction and binned distance.
type Extractor struct {
	Templates []FeatureTemplate
	Log       bool
}

func NewExtractor(setup *FeatureSetup) (*Extractor, error) {
	x := &Extractor{Templates: make([]FeatureTemplate, 0, setup.NumFeatures())}
	for _, group := range setup.FeatureGroups {
		for _, featTemplateStr := range group.Features {
			template, err := ParseFeatureTemplate(featTemplateStr)
			if err != nil {
				return nil, fmt.Errorf("group %s: %w", group.Group, err)
			}
			x.Templates = append(x.Templates, *template)
		}
	}
	return x, nil
}

// NewExtractorFromFile loads the feature setup of filename, or the default
// setup when filename is empty.
func NewExtractorFromFile(filename string) (*Extractor, error) {
	if len(filename) == 0 {
		return NewExtractor(DefaultFeatureSetup())
	}
	setup, err := LoadFeatureConfFile(filename)
	if err != nil {
		return nil, err
	}
	return NewExtractor(setup)
}

func Direction(head, mod int) string {
	if head < mod {
		return "R"
	}
	return "L"
}

// DistanceBin buckets the distance between head and modifier: exact up to
// 5, then 5+ and 10+.
func DistanceBin(head, mod int) string {
	dist := util.AbsInt(head - mod)
	switch {
	case dist >= 10:
		return "10+"
	case dist > 5:
		return "5+"
	default:
		return strconv.Itoa(dist)
	}
}

// Features returns the feature identifiers of attaching mod to head in s.
func (x *Extractor) Features(s *types.Sample, head, mod int) []string {
	retval := make([]string, 0, 2*len(x.Templates)+APPROX_FEATURES)
	conjunct := CONJUNCT_SEPARATOR + Direction(head, mod) + CONJUNCT_SEPARATOR + DistanceBin(head, mod)
	for _, template := range x.Templates {
		for _, value := range x.values(s, &template, head, mod) {
			feature := template.ConfStr + TEMPLATE_PREFIX + value
			retval = append(retval, feature, feature+conjunct)
		}
	}
	return retval
}

// FeatureFunc binds the extractor to a sample.
func (x *Extractor) FeatureFunc(s *types.Sample) types.FeatureFunc {
	return func(head, mod int) []string {
		return x.Features(s, head, mod)
	}
}

// values renders a template; a template with a between element yields one
// value per position strictly between head and modifier, none if adjacent.
func (x *Extractor) values(s *types.Sample, template *FeatureTemplate, head, mod int) []string {
	var (
		fixed     = make([]string, len(template.Elements))
		generator = -1
	)
	for i, element := range template.Elements {
		switch element.Address {
		case 'h':
			fixed[i] = attributes(s, head+element.Offset, element.Attributes)
		case 'm':
			fixed[i] = attributes(s, mod+element.Offset, element.Attributes)
		case 'b':
			generator = i
		}
	}
	if generator < 0 {
		return []string{strings.Join(fixed, GENERIC_SEPARATOR)}
	}
	from, to := head, mod
	if from > to {
		from, to = to, from
	}
	retval := make([]string, 0, util.Max(to-from-1, 0))
	seen := make(map[string]bool, cap(retval))
	for pos := from + 1; pos < to; pos++ {
		fixed[generator] = attributes(s, pos, template.Elements[generator].Attributes)
		value := strings.Join(fixed, GENERIC_SEPARATOR)
		if !seen[value] {
			seen[value] = true
			retval = append(retval, value)
		}
	}
	return retval
}

func attributes(s *types.Sample, pos int, attrs []string) string {
	values := make([]string, len(attrs))
	for i, attr := range attrs {
		values[i] = attribute(s, pos, attr)
	}
	return strings.Join(values, GENERIC_SEPARATOR)
}

func attribute(s *types.Sample, pos int, attr string) string {
	if pos < 0 || pos >= len(s.Tokens) {
		return NONE_VALUE
	}
	if pos == 0 {
		return ROOT_VALUE
	}
	token := s.Tokens[pos]
	switch attr {
	case "w":
		return token.Form
	case "l":
		return token.Lemma
	case "p":
		return token.POS
	case "cp":
		return token.CPOS
	case "f":
		return token.Feats
	}
	// wN
	n, _ := strconv.Atoi(attr[1:])
	return util.Prefix(token.Form, n)
}

// TemplateValues lists, sorted and without duplicates, the values a template
// rendered among the given features. Values are stripped of their direction
// and distance conjunct.
func TemplateValues(features []string, confStr string) []string {
	prefix := confStr + TEMPLATE_PREFIX
	seen := make(map[string]bool)
	for _, feature := range features {
		if !strings.HasPrefix(feature, prefix) {
			continue
		}
		value := feature[len(prefix):]
		if i := strings.Index(value, CONJUNCT_SEPARATOR); i >= 0 {
			value = value[:i]
		}
		if value == NONE_VALUE || value == ROOT_VALUE {
			continue
		}
		seen[value] = true
	}
	retval := make([]string, 0, len(seen))
	for value := range seen {
		retval = append(retval, value)
	}
	sort.Strings(retval)
	return retval
}
