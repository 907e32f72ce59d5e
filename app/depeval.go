package app

import (
	"flag"
	"fmt"
	"log"

	"github.com/louiezzang/yg-nlp-sub000/eval"
	"github.com/louiezzang/yg-nlp-sub000/nlp/format/conll"

	"github.com/gonuts/commander"
)

func DepEvalConfigOut() {
	log.Println("Data")
	log.Printf("Parsed result file:\t%s", input)
	log.Printf("Gold file:\t\t%s", inputGold)
}

func DepEval(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"p", "g"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if allOut {
		DepEvalConfigOut()
	}
	parsed, err := conll.ReadSamplesFile(input)
	if err != nil {
		return err
	}
	gold, err := conll.ReadSamplesFile(inputGold)
	if err != nil {
		return err
	}
	if allOut {
		log.Println("Read", len(parsed), "parsed and", len(gold), "gold sentences")
	}
	total, utotal, err := eval.Corpus(parsed, gold)
	if err != nil {
		return err
	}
	fmt.Printf("LAS: %.2f%%\tUAS: %.2f%%\tLEM: %.2f%%\tUEM: %.2f%%\n",
		100*total.Precision(), 100*utotal.Precision(), 100*total.ExactMatch(), 100*utotal.ExactMatch())
	log.Println("Result (UAS, LAS, UEM #, UEM %): ", utotal.Precision(), total.Precision(), utotal.Exact, utotal.ExactMatch(), "TruePos:", total.TP, "in", total.Population)
	return nil
}

func DepEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepEval,
		UsageLine: "eval <file options> [arguments]",
		Short:     "runs dependency eval",
		Long: `
runs dependency eval: labeled and unlabeled attachment scores and exact match

	$ ./yg-nlp eval -p <conll> -g <conll>

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&input, "p", "", "Parse Result Conll File")
	cmd.Flag.StringVar(&inputGold, "g", "", "Gold Conll File")
	return cmd
}
