package app

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/alg/graph"
	"github.com/louiezzang/yg-nlp-sub000/nlp/format/conll"
	"github.com/louiezzang/yg-nlp-sub000/nlp/format/taggedsentence"
	"github.com/louiezzang/yg-nlp-sub000/nlp/parser/dependency/firstorder"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"

	"github.com/c-bata/go-prompt"
	"github.com/gonuts/commander"
)

const (
	SHELL_QUIT   = "quit"
	SHELL_SET_K  = ":k"
	MAX_SUGGEST  = 12
	FORM_CONFSTR = "m|w"
	TAG_CONFSTR  = "m|p"
)

// Shell parses tagged sentences typed one per line.
type Shell struct {
	Parser *firstorder.Parser
	Forms  []string
	Tags   []string
}

func NewShell(parser *firstorder.Parser, features []string) *Shell {
	return &Shell{
		Parser: parser,
		Forms:  firstorder.TemplateValues(features, FORM_CONFSTR),
		Tags:   firstorder.TemplateValues(features, TAG_CONFSTR),
	}
}

// Execute runs one input line, writing its output to out. It returns true
// when the shell should exit.
func (s *Shell) Execute(in string, out io.Writer) bool {
	in = strings.TrimSpace(in)
	switch {
	case len(in) == 0:
		return false
	case in == SHELL_QUIT:
		return true
	case strings.HasPrefix(in, SHELL_SET_K):
		k, err := strconv.Atoi(strings.TrimSpace(in[len(SHELL_SET_K):]))
		if err != nil || k < 1 {
			fmt.Fprintf(out, "bad k %q\n", in[len(SHELL_SET_K):])
			return false
		}
		s.Parser.K = k
		fmt.Fprintf(out, "K set to %d\n", k)
		return false
	}
	sample, err := taggedsentence.ParseLine(in)
	if err != nil {
		fmt.Fprintln(out, err)
		return false
	}
	for rank, tree := range s.Parser.Parse(sample) {
		fmt.Fprintf(out, "# tree %d score %g %s\n", rank+1, tree.Score(), Bracketed(sample, tree.Heads(sample.Len())))
		if err := conll.WriteSamples(out, []*types.Sample{sample.WithTree(tree)}); err != nil {
			fmt.Fprintln(out, err)
			return false
		}
	}
	return false
}

// Bracketed renders the dependents of ROOT as nested heads, each followed by
// its own dependents: "(barks/VBZ dog/NN)".
func Bracketed(sample *types.Sample, heads []int) string {
	children := graph.Children(heads)
	var render func(pos int) string
	render = func(pos int) string {
		if len(children[pos]) == 0 {
			return sample.Tokens[pos].String()
		}
		parts := []string{sample.Tokens[pos].String()}
		for _, child := range children[pos] {
			parts = append(parts, render(child))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	parts := make([]string, 0, len(children[0]))
	for _, child := range children[0] {
		parts = append(parts, render(child))
	}
	return strings.Join(parts, " ")
}

// Suggestions completes the last word of text: known forms before the tag
// separator and known tags after it.
func (s *Shell) Suggestions(text string) []prompt.Suggest {
	suggestions := []prompt.Suggest{}
	if len(text) == 0 || strings.HasSuffix(text, " ") {
		return suggestions
	}
	fields := strings.Fields(text)
	word := fields[len(fields)-1]
	if split := strings.LastIndex(word, taggedsentence.TAG_SEPARATOR); split > 0 {
		form, tag := word[:split+1], word[split+1:]
		for _, known := range s.Tags {
			if strings.HasPrefix(known, tag) {
				suggestions = append(suggestions, prompt.Suggest{Text: form + known, Description: "tag"})
			}
		}
		return suggestions
	}
	if len(fields) == 1 && strings.HasPrefix(SHELL_QUIT, word) {
		suggestions = append(suggestions, prompt.Suggest{Text: SHELL_QUIT, Description: "exit the shell"})
	}
	for _, known := range s.Forms {
		if strings.HasPrefix(known, word) {
			suggestions = append(suggestions, prompt.Suggest{Text: known + taggedsentence.TAG_SEPARATOR, Description: "form"})
		}
	}
	return suggestions
}

func (s *Shell) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return s.Suggestions(in.TextBeforeCursor())
	}
}

func (s *Shell) Run(out io.Writer) {
	fmt.Fprintf(out, "Type form/TAG tokens separated by spaces, %s N to set K, %s to exit\n", SHELL_SET_K, SHELL_QUIT)
	history := []string{}
	for {
		in := prompt.Input("parse> ", s.completer(),
			prompt.OptionTitle("dependency shell"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(MAX_SUGGEST),
			prompt.OptionHistory(history),
		)
		if s.Execute(in, out) {
			return
		}
		history = append(history, in)
	}
}

func DepShell(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"m"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if K < 1 {
		return fmt.Errorf("K must be positive, got %d", K)
	}
	data, dense, err := LoadModel(modelFile)
	if err != nil {
		return err
	}
	extractor, err := data.Extractor(featuresFile)
	if err != nil {
		return err
	}
	parser := &firstorder.Parser{Extractor: extractor, Model: dense, K: K}
	NewShell(parser, dense.Features.Values()).Run(os.Stdout)
	return nil
}

func DepShellCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepShell,
		UsageLine: "shell <file options> [arguments]",
		Short:     "parse tagged sentences interactively",
		Long: `
parse form/TAG sentences typed at a prompt with a trained model

	$ ./yg-nlp shell -m <model file> [-k 3]

`,
		Flag: *flag.NewFlagSet("shell", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.IntVar(&K, "k", 1, "Number of trees to show per sentence")
	cmd.Flag.StringVar(&featuresFile, "f", "", "Features Configuration File (default: the one stored in the model)")
	return cmd
}
