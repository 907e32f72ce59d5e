package app

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/louiezzang/yg-nlp-sub000/util"

	"github.com/davecgh/go-spew/spew"
	"github.com/gonuts/commander"
)

var spewModel bool

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func DumpModel(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"m"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	data, dense, err := LoadModel(modelFile)
	if err != nil {
		return err
	}
	if allOut {
		log.Println("Trained for", data.Iterations, "iterations over", data.Samples, "samples")
	}
	var writer io.Writer = os.Stdout
	if len(outFile) > 0 {
		file, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}
	if spewModel {
		spewConfig.Fdump(writer, data)
		return nil
	}
	return util.Dumper(dense).WriteText(writer)
}

func DumpCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DumpModel,
		UsageLine: "dump <file options> [arguments]",
		Short:     "write a trained model in human readable form",
		Long: `
write the label table, the feature table and the weight matrix of a model

	$ ./yg-nlp dump -m <model file> [-o <file>] [-spew]

`,
		Flag: *flag.NewFlagSet("dump", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.StringVar(&outFile, "o", "", "Output File (default stdout)")
	cmd.Flag.BoolVar(&spewModel, "spew", false, "Dump the raw serialized model structure")
	return cmd
}
