package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// CheckCommand evaluates role and permission queries against the
// restored session. Exit status 1 signals a denied check.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check roles and permissions of the current session",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "role",
				Usage: "Role that must be held (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "perm",
				Usage: "Permission that must be granted (repeatable)",
			},
		},
		Action: func(c *cli.Context) error {
			roles := c.StringSlice("role")
			perms := c.StringSlice("perm")
			if len(roles) == 0 && len(perms) == 0 {
				return cli.Exit("at least one --role or --perm is required", 2)
			}

			rt, err := buildRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.restore(c.Context)

			denied := false
			for _, role := range roles {
				ok := rt.Subject.HasRole(role)
				fmt.Printf("role %-24s %s\n", role, verdict(ok))
				denied = denied || !ok
			}
			for _, perm := range perms {
				ok := rt.Subject.IsPermitted(perm)
				fmt.Printf("perm %-24s %s\n", perm, verdict(ok))
				denied = denied || !ok
			}

			if denied {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func verdict(ok bool) string {
	if ok {
		return "granted"
	}
	return "denied"
}
