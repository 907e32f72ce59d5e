package webapi

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/louiezzang/yg-nlp-sub000/app"

	"github.com/gonuts/commander"
)

var (
	modelFile    string
	featuresFile string
	addr         string
	maxK         int
	workers      int
)

func APIServer(cmd *commander.Command, args []string) error {
	if err := app.VerifyFlags(cmd, []string{"m"}); err != nil {
		return err
	}
	server := NewDepServer(modelFile, featuresFile, maxK)
	server.Workers = workers
	if err := server.Load(); err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Minute,
		WriteTimeout: 5 * time.Minute,
	}
	log.Println("Serving dependency parser on", addr)
	return httpServer.ListenAndServe()
}

func APIServerCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       APIServer,
		UsageLine: "api <file options> [arguments]",
		Short:     "serve a trained model over http",
		Long: `
serve a trained first-order model over http

	$ ./yg-nlp api -m <model file> [-addr :8000] [options]

	POST /dep/parse?k=K[&format=conll|tagged][&out=conll]
	GET  /dep/model
	POST /dep/reload

`,
		Flag: *flag.NewFlagSet("api", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.StringVar(&featuresFile, "f", "", "Features Configuration File (default: the one stored in the model)")
	cmd.Flag.StringVar(&addr, "addr", ":8000", "Listen address")
	cmd.Flag.IntVar(&maxK, "maxk", 64, "Largest k a request may ask for; 0 = unbounded")
	cmd.Flag.IntVar(&workers, "workers", 0, "Sentences parsed concurrently per request; 0 = GOMAXPROCS")
	return cmd
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine:   "api",
		Short:       "http api of the dependency parser",
		Subcommands: []*commander.Command{APIServerCmd()},
	}
	for _, api := range cmd.Subcommands {
		app.WrapCommand(api)
	}
	return cmd
}
