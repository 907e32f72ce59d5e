package taggedsentence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

const (
	TOKEN_SEPARATOR = " "
	TAG_SEPARATOR   = "/"
)

var ErrEmptySentence = errors.New("empty sentence")

// ParseToken splits a "form/POS" token on its last separator, so forms may
// contain the separator themselves.
func ParseToken(taggedTokenString string) (types.Token, error) {
	split := strings.LastIndex(taggedTokenString, TAG_SEPARATOR)
	if split <= 0 || split == len(taggedTokenString)-1 {
		return types.Token{}, fmt.Errorf("got untagged token: %s", taggedTokenString)
	}
	token, pos := taggedTokenString[:split], taggedTokenString[split+1:]
	return types.Token{Form: token, Lemma: token, CPOS: pos, POS: pos}, nil
}

// ParseLine reads one sentence of space separated tagged tokens into an
// untagged sample.
func ParseLine(line string) (*types.Sample, error) {
	taggedTokenStrings := strings.Fields(line)
	if len(taggedTokenStrings) == 0 {
		return nil, ErrEmptySentence
	}
	tokens := make([]types.Token, len(taggedTokenStrings))
	for i, taggedTokenString := range taggedTokenStrings {
		token, err := ParseToken(taggedTokenString)
		if err != nil {
			return nil, err
		}
		tokens[i] = token
	}
	return types.NewSample(tokens, nil, nil), nil
}

// Read reads one sentence per line, skipping blank lines.
func Read(reader io.Reader) ([]*types.Sample, error) {
	var sentences []*types.Sample
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		sent, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		sentences = append(sentences, sent)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func ReadFile(filename string) ([]*types.Sample, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}
