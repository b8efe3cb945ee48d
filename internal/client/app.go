package client

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
)

const usage = `usage: client [-a address] [-timeout 10s] [-token-file path] <command> [flags]

commands:
  signup  -name NAME -email EMAIL [-password PASSWORD]
  login   -email EMAIL [-password PASSWORD]
  profile
  logout
  version

A missing -password is read from the first line of standard input.`

type App struct {
	adapter   adapter.AuthAdapter
	tokens    *TokenFile
	buildInfo models.AppBuildInfo

	in  io.Reader
	out io.Writer

	logger *logger.Logger
}

func NewApp(authAdapter adapter.AuthAdapter, tokens *TokenFile, buildInfo models.AppBuildInfo, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:   authAdapter,
		tokens:    tokens,
		buildInfo: buildInfo,
		in:        in,
		out:       out,
		logger:    logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	command, rest := args[0], args[1:]
	switch command {
	case "signup":
		return a.signup(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "profile":
		return a.profile(ctx)
	case "logout":
		return a.logout(ctx)
	case "version":
		return a.version(ctx)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

func (a *App) signup(ctx context.Context, args []string) error {
	var req models.SignupRequest
	fs := a.newFlagSet("signup")
	fs.StringVar(&req.FullName, "name", "", "Full name")
	fs.StringVar(&req.Email, "email", "", "Email address")
	fs.StringVar(&req.Password, "password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	password, err := a.passwordOrStdin(req.Password)
	if err != nil {
		return err
	}
	req.Password = password

	user, err := a.adapter.Signup(ctx, req)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if err = a.tokens.Save(a.adapter.Token()); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "User created successfully")
	a.printUser(user)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	var req models.LoginRequest
	fs := a.newFlagSet("login")
	fs.StringVar(&req.Email, "email", "", "Email address")
	fs.StringVar(&req.Password, "password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	password, err := a.passwordOrStdin(req.Password)
	if err != nil {
		return err
	}
	req.Password = password

	user, err := a.adapter.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err = a.tokens.Save(a.adapter.Token()); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	a.printUser(user)
	return nil
}

// profile drops a stored token the server no longer accepts.
func (a *App) profile(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotLoggedIn
	}
	a.adapter.SetToken(token)

	user, err := a.adapter.Profile(ctx)
	if errors.Is(err, adapter.ErrUnauthorized) {
		a.logger.Debug().Err(err).Msg("stored token rejected, removing it")
		if delErr := a.tokens.Delete(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return fmt.Errorf("profile: %w", err)
	}
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	a.printUser(user)
	return nil
}

// logout forgets the local token even when the server call fails.
func (a *App) logout(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.adapter.SetToken(token)

	logoutErr := a.adapter.Logout(ctx)
	if err = a.tokens.Delete(); err != nil {
		return errors.Join(logoutErr, err)
	}
	if logoutErr != nil {
		return fmt.Errorf("logout: %w", logoutErr)
	}

	fmt.Fprintln(a.out, "Logout successful")
	return nil
}

// version prints the client build and, when reachable, the server version.
func (a *App) version(ctx context.Context) error {
	fmt.Fprintf(a.out, "Client version: %s\n", a.buildInfo.BuildVersion())
	fmt.Fprintf(a.out, "Client build date: %s\n", a.buildInfo.BuildDate())
	fmt.Fprintf(a.out, "Client build commit: %s\n", a.buildInfo.BuildCommit())

	serverVersion, err := a.adapter.Version(ctx)
	if err != nil {
		a.logger.Debug().Err(err).Msg("server version unavailable")
		fmt.Fprintf(a.out, "Server version: %s\n", models.BuildInfoNotAvailable)
		return nil
	}
	fmt.Fprintf(a.out, "Server version: %s\n", serverVersion)
	return nil
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) passwordOrStdin(password string) (string, error) {
	if password != "" {
		return password, nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) printUser(user models.User) {
	fmt.Fprintf(a.out, "ID:      %s\n", user.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", user.FullName)
	fmt.Fprintf(a.out, "Email:   %s\n", user.Email)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}
}
