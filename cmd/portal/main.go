package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"sidifa/portal/config"
	"sidifa/portal/internal/api"
	"sidifa/portal/internal/session"
	"sidifa/portal/internal/signup"
)

const usage = `usage: portal <command> [flags]

commands:
  signup          register a psikolog account and log in
  login           log in with email and password
  logout          log out and clear local auth state
  refresh         rotate the access token
  me              print the current user
  reset-password  set a new password with a reset token
  csrf            fetch a CSRF token

me, refresh and logout accept -email/-password to log in first.`

type app struct {
	conf     *config.AppConfig
	out      io.Writer
	client   *api.Client
	auth     *api.AuthService
	profiles *api.ProfileService
	store    session.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	config.MustLoad("config.yaml")

	a, err := newApp(config.Conf, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(conf *config.AppConfig, out io.Writer) (*app, error) {
	client, err := api.NewClient(conf.API)
	if err != nil {
		return nil, err
	}
	store, err := session.New(conf)
	if err != nil {
		return nil, err
	}
	return &app{
		conf:     conf,
		out:      out,
		client:   client,
		auth:     api.NewAuthService(client),
		profiles: api.NewProfileService(client),
		store:    store,
	}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx, args)
	case "refresh":
		return a.refresh(ctx, args)
	case "me":
		return a.me(ctx, args)
	case "reset-password":
		return a.resetPassword(ctx, args)
	case "csrf":
		return a.csrf(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	var p signup.Payload
	fs.StringVar(&p.Name, "name", "", "full name")
	fs.StringVar(&p.Email, "email", "", "email")
	fs.StringVar(&p.Password, "password", "", "password")
	fs.StringVar(&p.ConfirmPassword, "confirm-password", "", "password confirmation")
	fs.StringVar(&p.NoTelp, "phone", "", "phone number")
	fs.StringVar(&p.Spesialis, "spesialis", "", "specialisation")
	fs.StringVar(&p.Lokasi, "lokasi", "", "practice location")
	if err := fs.Parse(args); err != nil {
		return err
	}

	flow := signup.NewFlow(a.auth, a.profiles, a.store,
		signup.WithNavigator(signup.NavigatorFunc(func(ctx context.Context, target string) error {
			fmt.Fprintf(a.out, "redirect: %s\n", target)
			return nil
		})),
	)

	result := flow.Submit(ctx, p)
	switch result.State {
	case signup.StateSuccess:
		fmt.Fprintln(a.out, result.Success)
		return nil
	case signup.StateVerificationUnverified:
		fmt.Fprintln(a.out, "Akun Anda sedang menunggu verifikasi admin.")
		return nil
	case signup.StateVerificationDeclined:
		fmt.Fprintln(a.out, "Pendaftaran Anda ditolak oleh admin.")
		return nil
	}
	return errors.New(result.Error)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := a.doLogin(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.printJSON(body)
}

func (a *app) doLogin(ctx context.Context, email, password string) (json.RawMessage, error) {
	body, err := a.auth.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.store.SetAuthStatus(ctx, true); err != nil {
		return nil, err
	}
	return body, nil
}

// authFlags 为需要登录态的命令解析可选的 -email/-password，提供时先登录
func (a *app) authFlags(ctx context.Context, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	email := fs.String("email", "", "log in with this email first")
	password := fs.String("password", "", "password for -email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return nil
	}
	_, err := a.doLogin(ctx, *email, *password)
	return err
}

func (a *app) logout(ctx context.Context, args []string) error {
	if err := a.authFlags(ctx, "logout", args); err != nil {
		return err
	}

	body, err := a.auth.Logout(ctx)
	if clearErr := a.store.ClearAllAuthData(ctx); clearErr != nil {
		return clearErr
	}
	if err != nil {
		return err
	}
	return a.printJSON(body)
}

func (a *app) refresh(ctx context.Context, args []string) error {
	if err := a.authFlags(ctx, "refresh", args); err != nil {
		return err
	}

	body, err := a.auth.Refresh(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(body)
}

func (a *app) me(ctx context.Context, args []string) error {
	if err := a.authFlags(ctx, "me", args); err != nil {
		return err
	}

	profile, err := a.profiles.GetProfile(ctx)
	if err != nil {
		return err
	}
	if err := a.store.SetUserProfile(ctx, *profile); err != nil {
		return err
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return a.printJSON(raw)
}

func (a *app) resetPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	token := fs.String("token", "", "reset token from the email")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := a.auth.ResetPassword(ctx, api.ResetPasswordRequest{Token: *token, Password: *password})
	if err != nil {
		return err
	}
	return a.printJSON(body)
}

func (a *app) csrf(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("csrf", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.client.FetchCSRFToken(ctx)
	if err != nil {
		return err
	}
	cookieName := a.conf.API.CSRFCookieName
	fmt.Fprintf(a.out, "csrfToken: %s\ncookie %s: %s\n", resp.CSRFToken, cookieName, a.client.Cookie(cookieName))
	return nil
}

func (a *app) printJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Fprintln(a.out, string(raw))
		return nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(out))
	return nil
}
