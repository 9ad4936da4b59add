package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/askdb/askdb"
	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/config"
	"github.com/askdb/askdb/schema"
	"github.com/askdb/askdb/seed"
)

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:           "askdb",
		Short:         "Answer natural-language questions against SQL, document, search, and graph backends",
		Version:       askdb.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetLevel(logLevel)
			// Missing .env is fine; environment variables still apply.
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(askCmd(), replCmd(), mcpCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadClient() (*askdb.Client, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	client, err := askdb.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			st := client.Ask(cmd.Context(), strings.Join(args, " "))
			printAnswer(st)
			return nil
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive question loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			fmt.Println("askdb — ask a question, or type \"exit\" to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			var pending *schema.RunState
			for {
				if pending != nil {
					fmt.Print("clarify> ")
				} else {
					fmt.Print("ask> ")
				}
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				var st schema.RunState
				if pending != nil {
					st = client.AskClarified(cmd.Context(), *pending, line)
					pending = nil
				} else {
					st = client.Ask(cmd.Context(), line)
				}
				printAnswer(st)
				if st.ClarificationNeeded {
					pending = &st
				}
			}
		},
	}
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the ask and seed_data tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := loadClient()
			if err != nil {
				return err
			}
			return askdb.ServeStdio(askdb.NewServer(client))
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into every configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return seed.All(cmd.Context(), cfg.Backends)
		},
	}
}

func printAnswer(st schema.RunState) {
	if st.ClarificationNeeded {
		fmt.Println(st.ClarificationText)
		fmt.Println("(answer the follow-up question to continue)")
		return
	}
	fmt.Println(st.Response)
}
