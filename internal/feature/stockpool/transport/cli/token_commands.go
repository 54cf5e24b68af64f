package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	jwtmw "stockpool/internal/platform/jwt"
	"stockpool/internal/platform/storage"
)

// ErrNoToken はトークンが保存されていない場合に返されます。
var ErrNoToken = errors.New("no token stored")

func (c *commands) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}
	cmd.AddCommand(c.tokenSetCommand(), c.tokenShowCommand(), c.tokenClearCommand())
	return cmd
}

func (c *commands) tokenSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <token|->",
		Short: "Store the bearer token sent with every request (\"-\" reads it from stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token from stdin: %w", err)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("token must not be empty")
			}

			if err := c.store.Set(cmd.Context(), storage.KeyJWTToken, token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return err
		},
	}
}

func (c *commands) tokenShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Decode the stored token (the signature is not verified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := c.store.Get(cmd.Context(), storage.KeyJWTToken)
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNoToken
			}
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			info, err := jwtmw.Inspect(token)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "algorithm: %s\n", info.Algorithm)
			fmt.Fprintf(out, "subject:   %s\n", info.Subject)
			if info.IssuedAt != nil {
				fmt.Fprintf(out, "issued:    %s\n", info.IssuedAt.Format(time.RFC3339))
			}
			if info.ExpiresAt != nil {
				status := "valid"
				if info.Expired(time.Now()) {
					status = "expired"
				}
				fmt.Fprintf(out, "expires:   %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), status)
			}
			return nil
		},
	}
}

func (c *commands) tokenClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.store.Delete(cmd.Context(), storage.KeyJWTToken); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "token cleared")
			return err
		},
	}
}
