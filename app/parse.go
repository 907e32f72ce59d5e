package app

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/louiezzang/yg-nlp-sub000/nlp/format/conll"
	"github.com/louiezzang/yg-nlp-sub000/nlp/parser/dependency/firstorder"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"

	"github.com/gonuts/commander"
)

func ParseConfigOut() {
	log.Println("Configuration")
	log.Printf("K:\t\t\t%d", K)
	log.Printf("Workers:\t\t%d", Workers)
	log.Printf("Model file:\t\t%s", modelFile)
	if len(featuresFile) > 0 {
		log.Printf("Features File:\t%s", featuresFile)
	}
	log.Println()
	log.Println("Data")
	log.Printf("Test file (conll):\t%s", input)
	log.Printf("Out file (conll):\t%s", outConll)
	if len(outKBest) > 0 {
		log.Printf("Out K-best (conll):\t%s", outKBest)
	}
}

func DepParse(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"m", "in", "oc"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if K < 1 {
		return fmt.Errorf("K must be positive, got %d", K)
	}
	if allOut {
		ParseConfigOut()
	}
	data, dense, err := LoadModel(modelFile)
	if err != nil {
		return err
	}
	extractor, err := data.Extractor(featuresFile)
	if err != nil {
		return err
	}
	samples, err := conll.ReadSamplesFile(input)
	if err != nil {
		return err
	}
	if allOut {
		log.Println("Read", len(samples), "sentences from", input)
	}
	parser := &firstorder.Parser{
		Extractor: extractor,
		Model:     dense,
		K:         K,
		Workers:   Workers,
	}
	startTime := time.Now()
	parsed := parser.ParseAll(samples)
	if allOut {
		log.Println("PARSE Total Time:", time.Since(startTime))
	}
	if err := conll.WriteSamplesFile(outConll, firstorder.Attach(samples, parsed)); err != nil {
		return err
	}
	if len(outKBest) > 0 {
		return conll.WriteSamplesFile(outKBest, KBestSamples(samples, parsed))
	}
	return nil
}

// KBestSamples lists, for every sample in order, one sample per parsed tree
// in rank order.
func KBestSamples(samples []*types.Sample, parsed [][]types.Tree) []*types.Sample {
	retval := make([]*types.Sample, 0, len(samples))
	for i, sample := range samples {
		for _, tree := range parsed[i] {
			retval = append(retval, sample.WithTree(tree))
		}
	}
	return retval
}

func DepParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepParse,
		UsageLine: "parse <file options> [arguments]",
		Short:     "parse conll sentences with a trained model",
		Long: `
parse conll sentences with a trained first-order model

	$ ./yg-nlp parse -m <model file> -in <conll> -oc <conll> [options]

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.StringVar(&input, "in", "", "Input Conll File")
	cmd.Flag.StringVar(&outConll, "oc", "", "Output Conll File (best tree)")
	cmd.Flag.StringVar(&outKBest, "okb", "", "Output Conll File of all K trees, in rank order")
	cmd.Flag.IntVar(&K, "k", 1, "Number of trees to find per sentence")
	cmd.Flag.IntVar(&Workers, "workers", 0, "Sentences parsed concurrently; 0 = GOMAXPROCS")
	cmd.Flag.StringVar(&featuresFile, "f", "", "Features Configuration File (default: the one stored in the model)")
	return cmd
}
