package app

import (
	"log"
	"os"
	"runtime"

	"github.com/gonuts/commander"
)

func AppCommands() []*commander.Command {
	return []*commander.Command{
		DepTrainCmd(),
		DepParseCmd(),
		DepEvalCmd(),
		DumpCmd(),
		DepShellCmd(),
	}
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine:   os.Args[0] + " train|parse|eval|dump|shell",
		Short:       "first-order dependency parser",
		Subcommands: AppCommands(),
	}
	for _, app := range cmd.Subcommands {
		WrapCommand(app)
	}
	return cmd
}

// WrapCommand adds the shared flags to a command and applies them before it runs.
func WrapCommand(app *commander.Command) {
	app.Run = NewAppWrapCommand(app.Run)
	app.Flag.IntVar(&CPUs, NUM_CPUS_FLAG, 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
	app.Flag.BoolVar(&allOut, "log", true, "Log configuration and progress")
}

func InitCommand(cmd *commander.Command, args []string) {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs {
		log.Printf("Warning: Number of CPUs capped to all available (%d)", maxCPUs)
		CPUs = 0
	}
	if CPUs == 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	wrapped := func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		return f(cmd, args)
	}

	return wrapped
}
