package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/darek/internal/errors"
	"github.com/hpungsan/darek/internal/ops"
	"github.com/hpungsan/darek/internal/web"
)

// maxCommandBytes caps a command read from stdin.
const maxCommandBytes = 64 << 10

// newCLIApp creates the CLI application with all commands.
// e may be nil when only help or version output is needed.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "darek",
		Usage:   "Rule-based command assistant",
		Version: Version,
		Commands: []*cli.Command{
			askCmd(e),
			serveCmd(e),
			dashboardCmd(e),
			historyCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// askCmd creates the ask command.
func askCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Run one command (from arguments, or stdin when piped)",
		ArgsUsage: "<command text>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, EnvVars: []string{"DAREK_USER"}, Usage: "User to save items for (omit to run without saving)"},
			&cli.BoolFlag{Name: "plain", Usage: "Print only the reply text"},
		},
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" && stdinHasData() {
				piped, err := readStdin(maxCommandBytes)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				text = piped
			}
			if strings.TrimSpace(text) == "" {
				return outputError(errors.NewInvalidRequest("Please provide a message"))
			}

			reply := e.assistant.Process(c.Context, text, c.String("user"))
			if c.Bool("plain") {
				_, err := fmt.Fprintln(os.Stdout, reply.Text)
				return err
			}
			return outputJSON(reply)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web chat UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to listen on"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port <= 0 || port > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid port: %d", port)))
			}

			srv := web.NewServer(web.Deps{
				DB:        e.db,
				Config:    e.cfg,
				Assistant: e.assistant,
				Weather:   e.gateway.Weather,
				News:      e.gateway.News,
				Logger:    e.log,
			}, Version, c.String("bind"), port)

			if err := web.Run(srv, e.log); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// dashboardCmd creates the dashboard command.
func dashboardCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "List a user's reminders, to-dos, shopping items, notes and timers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, EnvVars: []string{"DAREK_USER"}, Usage: "User whose items to list"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Dashboard(c.Context, e.db, c.String("user"))
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Page through a user's command history, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, EnvVars: []string{"DAREK_USER"}, Usage: "User whose history to list"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum rows to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Rows to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(c.Context, e.db, ops.HistoryListInput{
				UserID: c.String("user"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var dErr *errors.DarekError
	if stderrors.As(err, &dErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", dErr.Code, dErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most limit bytes from stdin.
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("input exceeds %d bytes", limit)
	}
	return strings.TrimSpace(string(data)), nil
}
