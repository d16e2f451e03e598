package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/routeguard-go/internal/config"
)

// ConfigCommand loads, verifies, and displays the effective configuration.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration operations",
		Subcommands: []*cli.Command{
			{
				Name:  "verify",
				Usage: "Load and verify the configuration",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					if err := config.Verify(cfg); err != nil {
						return err
					}
					fmt.Println("configuration ok")
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}

					fmt.Printf("auth.login_url     %s\n", cfg.Auth.LoginURL)
					fmt.Printf("auth.timeout       %s\n", cfg.Auth.Timeout)
					fmt.Printf("views.login        %s\n", cfg.Views.Login)
					fmt.Printf("views.index        %s\n", cfg.Views.Index)
					fmt.Printf("views.unauthorized %s\n", cfg.Views.Unauthorized)
					if cfg.Storage.Dir != "" {
						fmt.Printf("storage.dir        %s\n", cfg.Storage.Dir)
					} else {
						fmt.Println("storage.dir        (in-memory)")
					}
					fmt.Printf("storage.sealed     %v\n", cfg.Storage.SealKey != "")
					for _, rule := range cfg.Filters {
						fmt.Printf("filter %-24s %v\n", rule.Pattern, rule.Filters)
					}
					return nil
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	opts := []config.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	return config.NewLoader(opts...).Load()
}
