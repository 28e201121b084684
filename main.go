package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/aeropilot/aeropilot-go/internal/app"
	"github.com/aeropilot/aeropilot-go/internal/mock"
	"github.com/aeropilot/aeropilot-go/sdk/agent"
)

func main() {
	cliApp := &cli.App{
		Name:  "aeropilot",
		Usage: "Terminal client for the AeroPilot aviation agent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Backend URL",
				Value:   "http://localhost:8000",
				EnvVars: []string{"AEROPILOT_BACKEND_URL"},
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Run the mock agent server instead of the TUI",
			},
			&cli.IntFlag{
				Name:  "mock-port",
				Usage: "Port for the mock agent server",
				Value: 8000,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Send one question and print the answer",
				ArgsUsage: "<question>",
				Action:    runAsk,
			},
			{
				Name:   "health",
				Usage:  "Check backend health",
				Action: runHealth,
			},
		},
		Action: runTUI,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(c *cli.Context) *agent.Client {
	agent.SetLogger(agent.NewLoggerFromEnv())
	return agent.NewClient(c.String("backend"), agent.WithTimeout(60*time.Second))
}

func runTUI(c *cli.Context) error {
	if c.Bool("mock") {
		server := mock.NewServer(c.Int("mock-port"))
		return server.Start()
	}

	model := app.New(newClient(c))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	model.SetProgram(p)

	_, err := p.Run()
	return err
}

func runAsk(c *cli.Context) error {
	question := c.Args().First()
	if question == "" {
		return fmt.Errorf("usage: aeropilot ask <question>")
	}

	client := newClient(c)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := client.ChatSync(ctx, &agent.ChatRequest{Message: question})
	if err != nil {
		return err
	}
	if result.Err != "" {
		return fmt.Errorf("agent error: %s", result.Err)
	}

	answer := result.FinalAnswer
	if answer == "" {
		answer = result.Text
	}
	fmt.Println(answer)
	if result.Tokens.Total > 0 {
		fmt.Fprintf(os.Stderr, "session %s, %d tokens\n", result.SessionID, result.Tokens.Total)
	}
	return nil
}

func runHealth(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := newClient(c).Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status: %s, agent configured: %v\n", health.Status, health.AgentConfigured)
	return nil
}
