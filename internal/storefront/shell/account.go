package shell

import (
	"context"
	"fmt"
	"strings"

	"golang-storefront/internal/storefront/clients"
	"golang-storefront/internal/storefront/session"
)

// startSession installs the token before signing in so the list listeners
// fetch the remote copies with it.
func (s *Shell) startSession(ctx context.Context, token string, sess session.Session) {
	s.Tokens.SetToken(token)
	s.Sessions.SignIn(ctx, sess)
	fmt.Fprintf(s.out, "signed in as %s\n", session.NormalizeEmail(sess.Email))
}

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	tok, err := s.Users.Login(ctx, clients.Credentials{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	sess, err := s.Bridge.Exchange(tok.AccessToken)
	if err != nil {
		return err
	}
	s.startSession(ctx, tok.AccessToken, sess)
	return nil
}

func (s *Shell) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	tok, err := s.Users.Register(ctx, clients.Registration{
		Email:    args[0],
		Password: args[1],
		Name:     strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	sess, err := s.Bridge.Exchange(tok.AccessToken)
	if err != nil {
		return err
	}
	s.startSession(ctx, tok.AccessToken, sess)
	return nil
}

// oauth stands in for an external identity provider handing over a profile.
func (s *Shell) oauth(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	profile := clients.Profile{Email: args[0], Name: strings.Join(args[1:], " "), Provider: "oauth"}
	tok, err := s.Users.Upsert(ctx, profile)
	if err != nil {
		return err
	}
	s.startSession(ctx, tok.AccessToken, session.Session{
		Email:    profile.Email,
		Name:     profile.Name,
		Provider: profile.Provider,
	})
	return nil
}

func (s *Shell) logout(ctx context.Context, _ []string) error {
	if !s.Sessions.SignOut(ctx) {
		fmt.Fprintln(s.out, "not signed in")
		return nil
	}
	s.Tokens.SetToken("")
	fmt.Fprintln(s.out, "signed out")
	return nil
}

func (s *Shell) whoami(context.Context, []string) error {
	sess := s.currentSession()
	if !sess.Authenticated() {
		fmt.Fprintln(s.out, "anonymous")
		return nil
	}
	fmt.Fprintf(s.out, "%s <%s> via %s\n", sess.Name, sess.Email, sess.Provider)
	return nil
}
