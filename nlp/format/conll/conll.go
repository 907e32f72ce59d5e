// Package conll reads and writes CoNLL-X dependency files.
// For a description see http://ilk.uvt.nl/conll/#dataformat
package conll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

const (
	FIELD_SEPARATOR      = '\t'
	NUM_FIELDS           = 10
	FEATURES_SEPARATOR   = "|"
	FEATURE_SEPARATOR    = "="
	FEATURE_CONCAT_DELIM = ","
	EMPTY_FIELD          = "_"

	MAX_LINE = 1 << 20
)

type Features map[string]string

func (f Features) String() string {
	return FormatFeatures(f)
}

func FormatFeatures(feat map[string]string) string {
	if len(feat) == 0 {
		return EMPTY_FIELD
	}
	strs := make([]string, 0, len(feat))
	for k, v := range feat {
		strs = append(strs, fmt.Sprintf("%v%v%v", k, FEATURE_SEPARATOR, v))
	}
	sort.Strings(strs)
	return strings.Join(strs, FEATURES_SEPARATOR)
}

// A Row is a single parsed row of a conll data set. Head is types.NO_HEAD
// when the HEAD field is '_'.
type Row struct {
	ID      int
	Form    string
	Lemma   string
	CPosTag string
	PosTag  string
	Feats   Features
	FeatStr string
	Head    int
	DepRel  string
}

func (r Row) String() string {
	head := EMPTY_FIELD
	if r.Head != types.NO_HEAD {
		head = strconv.Itoa(r.Head)
	}
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		FormatString(r.Lemma),
		FormatString(r.CPosTag),
		FormatString(r.PosTag),
		FormatString(r.FeatStr),
		head,
		FormatString(r.DepRel),
		EMPTY_FIELD,
		EMPTY_FIELD}
	return strings.Join(fields, string(FIELD_SEPARATOR))
}

// A Sentence holds its rows in ID order.
type Sentence []Row

type Sentences []Sentence

// ParseHead parses a HEAD field; '_' yields types.NO_HEAD.
func ParseHead(value string) (int, error) {
	if value == EMPTY_FIELD {
		return types.NO_HEAD, nil
	}
	i, err := strconv.ParseInt(value, 10, 0)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("negative head %d", i)
	}
	return int(i), nil
}

func ParseString(value string) string {
	if value == EMPTY_FIELD {
		return ""
	}
	return value
}

func FormatString(value string) string {
	if value == "" {
		return EMPTY_FIELD
	}
	return value
}

func ParseFeatures(featuresStr string) (Features, error) {
	var featureMap Features
	if featuresStr == EMPTY_FIELD {
		return featureMap, nil
	}

	featureList := strings.Split(featuresStr, FEATURES_SEPARATOR)
	featureMap = make(Features, len(featureList))
	for _, featureStr := range featureList {
		featureKV := strings.Split(featureStr, FEATURE_SEPARATOR)
		if len(featureKV) != 2 {
			return nil, errors.New("Wrong number of fields for split of feature " + featureStr)
		}
		featName := featureKV[0]
		featValue := featureKV[1]
		existingFeatValue, featExist := featureMap[featName]
		if featExist {
			featureMap[featName] = existingFeatValue + FEATURE_CONCAT_DELIM + featValue
		} else {
			featureMap[featName] = featValue
		}
	}
	return featureMap, nil
}

func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) != NUM_FIELDS {
		return row, fmt.Errorf("Expected %d fields, got %d", NUM_FIELDS, len(record))
	}
	id, err := strconv.Atoi(record[0])
	if err != nil {
		return row, fmt.Errorf("Error parsing ID field (%s): %w", record[0], err)
	}
	row.ID = id

	form := ParseString(record[1])
	if form == "" {
		return row, errors.New("Empty FORM field")
	}
	row.Form = form
	row.Lemma = ParseString(record[2])
	row.CPosTag = ParseString(record[3])
	row.PosTag = ParseString(record[4])

	head, err := ParseHead(record[6])
	if err != nil {
		return row, fmt.Errorf("Error parsing HEAD field (%s): %w", record[6], err)
	}
	row.Head = head
	row.DepRel = ParseString(record[7])

	features, err := ParseFeatures(record[5])
	if err != nil {
		return row, fmt.Errorf("Error parsing FEATS field (%s): %w", record[5], err)
	}
	row.Feats = features
	row.FeatStr = ParseString(record[5])
	return row, nil
}

// Read splits the input into sentences at blank lines. Lines starting with
// '#' are skipped. Row IDs must run 1..n within each sentence and heads must
// point inside it.
func Read(reader io.Reader) (Sentences, error) {
	var (
		sentences   Sentences
		currentSent Sentence
		lineNum     int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), MAX_LINE)
	closeSentence := func() error {
		if len(currentSent) == 0 {
			return nil
		}
		for _, row := range currentSent {
			if row.Head > len(currentSent) {
				return fmt.Errorf("Sentence %d row %d: head %d out of range [0, %d]", len(sentences)+1, row.ID, row.Head, len(currentSent))
			}
		}
		sentences = append(sentences, currentSent)
		currentSent = nil
		return nil
	}
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(strings.TrimSpace(line)) == 0 {
			if err := closeSentence(); err != nil {
				return nil, err
			}
			continue
		}
		if line[0] == '#' {
			continue
		}
		row, err := ParseRow(strings.Split(line, string(FIELD_SEPARATOR)))
		if err != nil {
			return nil, fmt.Errorf("Error processing line %d at sentence %d: %w", lineNum, len(sentences)+1, err)
		}
		if row.ID != len(currentSent)+1 {
			return nil, fmt.Errorf("Line %d at sentence %d: expected ID %d, got %d", lineNum, len(sentences)+1, len(currentSent)+1, row.ID)
		}
		currentSent = append(currentSent, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Failure reading delimited file: %w", err)
	}
	if err := closeSentence(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func ReadFile(filename string) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

func Write(writer io.Writer, sents Sentences) error {
	bufWriter := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, row := range sent {
			if _, err := bufWriter.WriteString(row.String() + "\n"); err != nil {
				return err
			}
		}
		if err := bufWriter.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bufWriter.Flush()
}

func WriteFile(filename string, sents Sentences) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(file, sents); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Sample converts the sentence, prepending ROOT. A sentence whose heads are
// all '_' loads untagged (nil Heads); labels are kept only when every row
// has one.
func (sent Sentence) Sample() (*types.Sample, error) {
	var (
		tokens   = make([]types.Token, len(sent))
		heads    = make([]int, len(sent))
		labels   = make([]string, len(sent))
		tagged   int
		labelled int
	)
	for i, row := range sent {
		tokens[i] = types.Token{
			Form:  row.Form,
			Lemma: row.Lemma,
			CPOS:  row.CPosTag,
			POS:   row.PosTag,
			Feats: row.FeatStr,
		}
		heads[i], labels[i] = row.Head, row.DepRel
		if row.Head != types.NO_HEAD {
			tagged++
		}
		if row.DepRel != "" {
			labelled++
		}
	}
	switch tagged {
	case 0:
		return types.NewSample(tokens, nil, nil), nil
	case len(sent):
	default:
		return nil, fmt.Errorf("%d of %d rows have no head", len(sent)-tagged, len(sent))
	}
	if labelled != len(sent) {
		labels = nil
	}
	sample := types.NewSample(tokens, heads, labels)
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	return sample, nil
}

// FromSample builds the rows of a sample, leaving ROOT out.
func FromSample(s *types.Sample) Sentence {
	sent := make(Sentence, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		token := s.Tokens[i]
		row := Row{
			ID:      i,
			Form:    token.Form,
			Lemma:   token.Lemma,
			CPosTag: token.CPOS,
			PosTag:  token.POS,
			FeatStr: token.Feats,
			Head:    types.NO_HEAD,
		}
		if s.HasHeads() {
			row.Head = s.Heads[i]
		}
		if s.HasLabels() {
			row.DepRel = s.Labels[i]
		}
		sent = append(sent, row)
	}
	return sent
}

func ReadSamples(reader io.Reader) ([]*types.Sample, error) {
	sents, err := Read(reader)
	if err != nil {
		return nil, err
	}
	samples := make([]*types.Sample, len(sents))
	for i, sent := range sents {
		if samples[i], err = sent.Sample(); err != nil {
			return nil, fmt.Errorf("Sentence %d: %w", i+1, err)
		}
	}
	return samples, nil
}

func ReadSamplesFile(filename string) ([]*types.Sample, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadSamples(file)
}

func WriteSamples(writer io.Writer, samples []*types.Sample) error {
	sents := make(Sentences, len(samples))
	for i, s := range samples {
		sents[i] = FromSample(s)
	}
	return Write(writer, sents)
}

func WriteSamplesFile(filename string, samples []*types.Sample) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteSamples(file, samples); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
