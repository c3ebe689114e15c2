package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"factforum/internal/flagx"
	"factforum/internal/server"
	"factforum/internal/server/config"
)

// createAdminUsername extracts the -create-admin flag, if present. The flag
// is filtered out separately so the config flag set never sees it.
func createAdminUsername() string {
	args := flagx.FilterArgs(os.Args[1:], []string{"-create-admin"})

	fs := flag.NewFlagSet("bootstrap", flag.ContinueOnError)
	username := fs.String("create-admin", "", "create an admin account with the given username and exit")
	_ = fs.Parse(args)

	return strings.TrimSpace(*username)
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func runCreateAdmin(ctx context.Context, app *server.App, username string) error {
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	repeat, err := promptPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != repeat {
		return errors.New("passwords do not match")
	}

	return app.CreateAdmin(ctx, username, password)
}

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if username := createAdminUsername(); username != "" {
		if err := runCreateAdmin(ctx, app, username); err != nil {
			log.Printf("%v", err)
			os.Exit(1)
		}
		fmt.Printf("admin account %q created\n", username)
		return
	}

	app.Run(ctx)
}
