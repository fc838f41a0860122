package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ledgerdesk/internal/session"
)

var loginUser string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the accounting backend and store the session token",
	Long: `Sign in to the accounting backend.

The password is read without echo when stdin is a terminal, otherwise the
first line of stdin is used. The token is stored in api.token_file.

Examples:
  ledgerdesk login --user admin
  echo "$PASS" | ledgerdesk login --user admin`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := session.NewStore(cfg.API.TokenFile).Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "user name (prompted when empty)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	user := strings.TrimSpace(loginUser)
	if user == "" {
		fmt.Fprint(out, "User: ")
		if user, err = readLine(in); err != nil {
			return err
		}
	}
	password, err := readPassword(cmd, in)
	if err != nil {
		return err
	}
	if user == "" || password == "" {
		return errors.New("user and password are required")
	}

	store := session.NewStore(cfg.API.TokenFile)
	client, err := newClient(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()
	token, err := client.Login(ctx, user, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := store.Save(token); err != nil {
		return err
	}

	if exp, ok := session.Expiry(token); ok {
		fmt.Fprintf(out, "Logged in as %s until %s.\n", user, exp.Local().Format("02 Jan 2006 15:04"))
	} else {
		fmt.Fprintf(out, "Logged in as %s.\n", user)
	}
	return nil
}

// readPassword reads without echo from a terminal, or a plain line from
// anything else.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
