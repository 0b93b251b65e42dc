package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vende6/ChatWithMe/config"
	"github.com/vende6/ChatWithMe/internal/app"

	"flag"
)

var configPath = flag.String("config", "config.json", "client configuration file")

func main() {
	flag.Parse()
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		*configPath = envPath
	}

	cfg := config.MustReadConfig(*configPath)

	presenter := newTerminalPresenter(os.Stdout)
	application, err := app.NewApp(cfg, presenter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scanner := bufio.NewScanner(os.Stdin)

	username := ""
	hasIdentity, err := application.HasIdentity()
	if err != nil {
		fmt.Fprintf(os.Stderr, "identity check failed: %v\n", err)
		os.Exit(1)
	}
	if !hasIdentity {
		fmt.Print("Enter your username: ")
		if !scanner.Scan() {
			return
		}
		username = strings.TrimSpace(scanner.Text())
	}

	go func() {
		if err := application.Start(ctx, username); err != nil {
			fmt.Fprintf(os.Stderr, "session error: %v\n", err)
			cancel()
		}
	}()

	c := newCLI(application, os.Stdout, cancel)
	fmt.Println("Type a message and press Enter to send. /help lists commands.")
	c.loop(ctx, scanner)

	application.Stop()
}
