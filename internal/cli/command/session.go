package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/routeguard-go/internal/core/domain"
)

// LoginCommand authenticates against the configured login endpoint and,
// with --remember, persists remember-me state for later invocations.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate with the configured backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "principal",
				Aliases:  []string{"u"},
				Usage:    "Account identifier",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "credentials",
				Aliases: []string{"p"},
				Usage:   "Account credentials",
				EnvVars: []string{"ROUTEGUARD_CREDENTIALS"},
			},
			&cli.BoolFlag{
				Name:    "remember",
				Aliases: []string{"r"},
				Usage:   "Persist a remember-me token",
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := buildRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			token := &domain.Token{
				Principal:   c.String("principal"),
				Credentials: c.String("credentials"),
				RememberMe:  c.Bool("remember"),
			}
			defer token.Clear()

			if err := rt.Subject.Login(c.Context, token); err != nil {
				return err
			}

			sess := rt.Subject.Session(false)
			fmt.Printf("authenticated as %s\n", rt.Subject.Principal())
			fmt.Printf("session %s\n", domain.MaskHandle(sess.ID))
			if token.RememberMe {
				fmt.Println("remember-me state persisted")
			}
			return nil
		},
	}
}

// LogoutCommand clears the session and persisted remember-me state.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the session and persisted remember-me state",
		Action: func(c *cli.Context) error {
			rt, err := buildRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.restore(c.Context)
			rt.Subject.Logout(c.Context)
			fmt.Println("logged out")
			return nil
		},
	}
}

// StatusCommand shows the current session state without any network call.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the current session state",
		Action: func(c *cli.Context) error {
			rt, err := buildRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			if !rt.Subject.RestoreAuth(c.Context) {
				if rt.Subject.HasRememberMeData(c.Context) {
					fmt.Println("unauthenticated (remember-me data present)")
				} else {
					fmt.Println("unauthenticated")
				}
				return nil
			}

			sess := rt.Subject.Session(false)
			fmt.Printf("authenticated as %s\n", rt.Subject.Principal())
			fmt.Printf("session    %s\n", domain.MaskHandle(sess.ID))
			fmt.Printf("created    %s\n", sess.CreatedAtTime().Format("2006-01-02 15:04:05"))
			fmt.Printf("remembered %v\n", rt.Subject.IsRemembered())
			if roles := rt.Subject.Authorizer().Roles(); len(roles) > 0 {
				fmt.Printf("roles      %v\n", roles)
			}
			return nil
		},
	}
}
