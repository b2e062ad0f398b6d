package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-quote-keeper/models"
)

var errPasswordRequired = errors.New("password is required")

// credentialFlags are shared by register and login.
type credentialFlags struct {
	email    string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "account password; read from stdin when omitted")
	_ = cmd.MarkFlagRequired("email")
}

// credentials falls back to the first stdin line for the password so it
// stays out of the shell history.
func (f *credentialFlags) credentials(cmd *cobra.Command) (models.Credentials, error) {
	password := f.password
	if password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return models.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return models.Credentials{}, errPasswordRequired
	}

	return models.Credentials{Email: strings.TrimSpace(f.email), Password: password}, nil
}

func (a *App) registerCommand() *cobra.Command {
	var flags credentialFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credentials, err := flags.credentials(cmd)
			if err != nil {
				return err
			}

			response, err := a.adapter.Register(cmd.Context(), credentials)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return a.print(response.User)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var flags credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session in the token file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			credentials, err := flags.credentials(cmd)
			if err != nil {
				return err
			}

			response, err := a.adapter.Login(cmd.Context(), credentials)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return a.print(response.User)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget the tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.adapter.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.adapter.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("whoami: %w", err)
			}
			return a.print(user)
		},
	}
}

// versionOutput pairs the client build with the server build. Server is nil
// when the server could not be reached.
type versionOutput struct {
	Client models.VersionInfo  `json:"client"`
	Server *models.VersionInfo `json:"server,omitempty"`
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output := versionOutput{Client: a.build.VersionInfo(clientName)}

			server, err := a.adapter.Version(cmd.Context())
			if err != nil {
				a.logger.Warn().Err(err).Msg("server version is unavailable")
			} else {
				output.Server = &server
			}
			return a.print(output)
		},
	}
}
