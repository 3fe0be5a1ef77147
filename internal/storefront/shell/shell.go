// Package shell is the line-oriented storefront front end. Each command maps
// onto one storefront operation; output goes to a plain writer.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang-storefront/internal/storefront/cart"
	"golang-storefront/internal/storefront/catalog"
	"golang-storefront/internal/storefront/checkout"
	"golang-storefront/internal/storefront/clients"
	"golang-storefront/internal/storefront/dashboard"
	"golang-storefront/internal/storefront/reviews"
	"golang-storefront/internal/storefront/session"
	"golang-storefront/internal/storefront/wishlist"
)

var errUsage = errors.New("usage")

type Users interface {
	Login(ctx context.Context, creds clients.Credentials) (clients.TokenResponse, error)
	Register(ctx context.Context, reg clients.Registration) (clients.TokenResponse, error)
	Upsert(ctx context.Context, p clients.Profile) (clients.TokenResponse, error)
}

type Catalog interface {
	List(ctx context.Context, q catalog.Query) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	ByCreator(ctx context.Context, email string) ([]catalog.Product, error)
	Create(ctx context.Context, p catalog.Product) (catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

type Orders interface {
	UserOrders(ctx context.Context, email string) ([]dashboard.Order, error)
	Get(ctx context.Context, id string) (dashboard.Order, error)
	Cancel(ctx context.Context, id string) error
}

// TokenSetter receives the bearer token of the signed-in user.
type TokenSetter interface {
	SetToken(token string)
}

type Deps struct {
	Sessions *session.Manager
	Bridge   *session.Bridge
	Users    Users
	Tokens   TokenSetter
	Catalog  Catalog
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
	Checkout *checkout.Service
	Orders   Orders
	Reviews  reviews.Source
}

type Shell struct {
	Deps
	out   io.Writer
	query catalog.Query
	feeds map[string]*reviews.Feed
}

func New(deps Deps, out io.Writer) *Shell {
	return &Shell{
		Deps:  deps,
		out:   out,
		query: catalog.ParseQuery(url.Values{}),
		feeds: make(map[string]*reviews.Feed),
	}
}

// Run reads commands from in until EOF or quit.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		if quit := s.Execute(ctx, scanner.Text()); quit {
			return nil
		}
		fmt.Fprint(s.out, "> ")
	}
	return scanner.Err()
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	args := splitArgs(line)
	if len(args) == 0 {
		return false
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	if cmd == "quit" || cmd == "exit" {
		return true
	}

	handler, ok := s.commands()[cmd]
	if !ok {
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
		return false
	}
	if err := handler.safeRun(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(s.out, "usage: %s %s\n", cmd, handler.usage)
		} else {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return false
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// safeRun turns a panicking command into an error so the shell keeps going.
func (c command) safeRun(ctx context.Context, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command failed: %v", r)
		}
	}()
	return c.run(ctx, args)
}

func (s *Shell) commands() map[string]command {
	return map[string]command{
		"help":     {"", s.help},
		"login":    {"<email> <password>", s.login},
		"register": {"<email> <password> <name>", s.register},
		"oauth":    {"<email> <name>", s.oauth},
		"logout":   {"", s.logout},
		"whoami":   {"", s.whoami},
		"products": {"[key=value ...]", s.products},
		"product":  {"<id>", s.product},
		"add":      {"<id> [quantity]", s.add},
		"qty":      {"<id> <quantity>", s.setQuantity},
		"rm":       {"<id>", s.remove},
		"cart":     {"", s.showCart},
		"clear":    {"", s.clearCart},
		"wish":     {"<id>", s.toggleWish},
		"wishlist": {"", s.showWishlist},
		"checkout": {"[key=value ...]", s.checkout},
		"orders":   {"", s.orders},
		"order":    {"<id>", s.order},
		"cancel":   {"<id>", s.cancel},
		"reviews":  {"<product-id> [sort]", s.reviews},
		"more":     {"<product-id>", s.moreReviews},
		"review":   {"<product-id> <rating> <title> [| comment]", s.review},
		"unreview": {"<product-id>", s.unreview},
		"helpful":  {"<product-id> <review-id>", s.helpful},
		"sell":     {"key=value ...", s.sell},
		"listings": {"", s.listings},
		"unlist":   {"<id>", s.unlist},
	}
}

func (s *Shell) help(context.Context, []string) error {
	cmds := s.commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %-9s %s\n", name, cmds[name].usage)
	}
	fmt.Fprintln(s.out, "  quit")
	return nil
}

func (s *Shell) currentSession() *session.Session {
	sess, ok := s.Sessions.Current()
	if !ok {
		return nil
	}
	return &sess
}

func (s *Shell) requireSession() (*session.Session, error) {
	sess := s.currentSession()
	if !sess.Authenticated() {
		return nil, session.ErrSignInRequired
	}
	return sess, nil
}

// splitArgs splits on whitespace, keeping double-quoted runs together.
func splitArgs(line string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case (r == ' ' || r == '\t') && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}

// pairs parses key=value arguments.
func pairs(args []string) (url.Values, error) {
	v := url.Values{}
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", errUsage, a)
		}
		v.Set(key, value)
	}
	return v, nil
}

func money(v float64) string {
	return "৳" + strconv.FormatFloat(v, 'f', 2, 64)
}
