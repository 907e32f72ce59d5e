package main

import (
	"context"
	"fmt"
	"os"

	"github.com/louiezzang/yg-nlp-sub000/app"
	"github.com/louiezzang/yg-nlp-sub000/webapi"

	"github.com/gonuts/commander"
)

var cmd = &commander.Command{
	UsageLine: os.Args[0] + " app|api",
	Short:     "first-order dependency parser, as a standalone app or an api server",
}

func init() {
	cmd.Subcommands = append(app.AllCommands().Subcommands, webapi.AllCommands().Subcommands...)
}

func exit(err error) {
	fmt.Printf("**error**: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := cmd.Dispatch(context.Background(), os.Args[1:]); err != nil {
		exit(err)
	}
}
