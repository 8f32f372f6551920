// aupherectl sends one message to the Auphere agent and streams the reply
// to stdout. Progress commentary goes to stderr so the answer stays pipeable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	chat "github.com/auphere/agent-core/core"
	"github.com/auphere/agent-core/core/credentials"
	"github.com/auphere/agent-core/core/sessions"
	"github.com/auphere/agent-core/core/sessions/filestore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aupherectl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	mode := flag.String("mode", "", "agent mode override")
	newSession := flag.Bool("new-session", false, "start a fresh conversation")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(strings.Join(flag.Args(), " "))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	resolver := sessions.NewResolver(filestore.New(cfg.SessionFile),
		sessions.WithReconcileCallback(func(sessionID string) {
			fmt.Fprintf(os.Stderr, "session: %s\n", sessionID)
		}),
	)
	if *newSession {
		resolver.Clear(ctx)
	}

	opts := []chat.ClientOption{chat.WithSessionResolver(resolver)}
	if cfg.Mode != "" {
		opts = append(opts, chat.WithMode(cfg.Mode))
	}
	if token := os.Getenv("AUPHERE_TOKEN"); token != "" {
		opts = append(opts, chat.WithCredentials(credentials.Static(token)))
	}

	client := chat.NewClient(cfg.BackendBaseURL, opts...)

	var runOpts []chat.RunOption
	if *mode != "" {
		runOpts = append(runOpts, chat.WithRunMode(*mode))
	}

	printed := 0
	lastText := ""
	var final chat.Result
	var streamErr error
	client.PromptWithStream([]chat.Message{chat.UserMessage(message)}, runOpts...).Results(ctx)(func(result chat.Result, err error) bool {
		if err != nil {
			streamErr = err
			return false
		}

		if result.Ephemeral {
			fmt.Fprintf(os.Stderr, "· %s\n", result.Text)
			return true
		}

		// Partial results carry the full accumulation; print only what is
		// new. A final text that rewrites the accumulation restarts the line.
		if printed > len(result.Text) || result.Text[:printed] != lastText[:printed] {
			fmt.Println()
			printed = 0
		}
		fmt.Print(result.Text[printed:])
		printed = len(result.Text)
		lastText = result.Text
		final = result
		return true
	})
	if streamErr != nil {
		return streamErr
	}
	fmt.Println()

	for _, place := range final.Places {
		fmt.Printf("  - %s (%s)\n", place.Name, place.Category)
	}
	if final.Plan != nil {
		fmt.Printf("  plan: %s (%s)\n", final.Plan.Title, final.Plan.City)
	}

	return nil
}
