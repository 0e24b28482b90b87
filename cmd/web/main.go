package main

import (
	"fmt"
	"net"
	"os"
	"os/user"

	"github.com/de-tools/chain-atlas/pkg/server"
	"github.com/de-tools/chain-atlas/pkg/services/dataset"
	"github.com/de-tools/chain-atlas/pkg/services/registry"
	"github.com/de-tools/chain-atlas/pkg/services/session"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Chain Atlas",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.chainatlas", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the sources config file (default is $HOME/.chainatlas)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var sources registry.SourceRegistry
	if _, err := os.Stat(cfgPath); err == nil {
		sources, err = registry.NewSourceRegistry(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to read sources config: %w", err)
		}
		logger.Info().Msgf("Sources config found at `%s` successfully loaded.", cfgPath)
		profiles, _ := sources.GetProfiles()
		for _, profile := range profiles {
			logger.Info().Msgf("Name: `%s`, Kind: `%s`", profile.Name, profile.Kind)
		}
	} else {
		logger.Info().Msgf("No sources config at `%s`, named sources disabled.", cfgPath)
	}

	loader := dataset.NewLoader(dataset.Options{})
	manager := session.NewManager(loader, nil)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)

	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Sessions: manager,
			Registry: sources,
			Logger:   logger,
		},
	})

	return api.Start()
}
