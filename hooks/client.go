package hooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/akyaiy/godoit/idoit"
	"github.com/akyaiy/godoit/internal/core/corestate"
	"github.com/akyaiy/godoit/internal/core/sessionstore"
	"github.com/akyaiy/godoit/internal/engine/app"
	"golang.org/x/term"
)

// PasswordReader reads a password without echo. It is replaced in tests.
var PasswordReader = func(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("password required but stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return string(pw), nil
}

func Info() RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		v, err := x.Client.Version(ctx)
		if err != nil {
			return err
		}
		return x.Out.Version(v)
	}
}

func Search(query string) RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		res, err := x.Client.Search(ctx, query)
		if err != nil {
			return err
		}
		return x.Out.Search(res)
	}
}

func Constants() RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		c, err := x.Client.Constants(ctx)
		if err != nil {
			return err
		}
		return x.Out.Constants(c)
	}
}

// Call sends method with params given as a JSON object and prints the raw result.
func Call(method, params string) RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		var p idoit.Params
		if strings.TrimSpace(params) != "" {
			if err := json.Unmarshal([]byte(params), &p); err != nil {
				return fmt.Errorf("params must be a JSON object: %w", err)
			}
		}
		raw, err := x.Client.Call(ctx, method, p)
		if err != nil {
			return err
		}
		return x.Out.Raw(raw)
	}
}

// Login opens a session and stores it for the following commands. The
// password is prompted for when it is not configured or prompt is set.
func Login(prompt bool) RunFunc {
	return func(ctx context.Context, cs *corestate.CoreState, x *app.AppX) error {
		conf := x.Config.Conf.IDoit
		username, password := *conf.Username, *conf.Password
		if username == "" {
			return idoit.ErrMissingCredentials
		}
		if prompt || password == "" {
			pw, err := PasswordReader(fmt.Sprintf("Password for %s: ", username))
			if err != nil {
				return err
			}
			password = pw
		}
		if err := x.Client.SetAuth(username, password); err != nil {
			return fmt.Errorf("%w (session stored in %s)", err, cs.SessionFile)
		}

		res, err := x.Client.Login(ctx)
		if err != nil {
			return err
		}
		if err := x.Sessions.Save(&sessionstore.Record{
			URL:       x.Client.URL(),
			Username:  res.Username,
			SessionID: res.SessionID,
		}); err != nil {
			return err
		}
		return x.Out.Login(res)
	}
}

// Logout ends the stored session. Without one there is nothing to do.
func Logout() RunFunc {
	return func(ctx context.Context, _ *corestate.CoreState, x *app.AppX) error {
		if x.Client.Session() == "" {
			return x.Out.Message("Not logged in")
		}
		if err := x.Client.Logout(ctx); err != nil {
			var reqErr *idoit.RequestError
			if !errors.As(err, &reqErr) || !reqErr.IsRemote() {
				return err
			}
			// the remote side no longer knows the session, forget it anyway
			x.SLog.Warn("logout rejected, dropping stored session", "error", err.Error())
		}
		if err := x.Sessions.Clear(x.Client.URL()); err != nil {
			return err
		}
		return x.Out.Message("Logged out")
	}
}

// Config prints the effective configuration with secrets masked.
func Config() RunFunc {
	return func(_ context.Context, cs *corestate.CoreState, x *app.AppX) error {
		w := x.Stdout
		source := cs.ConfigPath
		if source == "" {
			source = corestate.StringsNone
		}
		fmt.Fprintf(w, "config file: %s\n", source)
		x.Config.Print(w, x.Config.Conf)
		return nil
	}
}
