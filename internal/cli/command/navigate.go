package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// NavigateCommand simulates navigation events through the interceptor,
// printing the decision and any redirect side effects for each path.
func NavigateCommand() *cli.Command {
	return &cli.Command{
		Name:      "navigate",
		Usage:     "Evaluate navigation paths against the configured filter rules",
		ArgsUsage: "PATH [PATH...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one path is required", 2)
			}

			rt, err := buildRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			denied := false
			for _, path := range c.Args().Slice() {
				if rt.Interceptor.OnNavigate(c.Context, path) {
					fmt.Printf("%-32s allow\n", path)
				} else {
					fmt.Printf("%-32s deny\n", path)
					denied = true
				}
			}

			if denied {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
