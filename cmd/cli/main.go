// Command cli is a terminal client for the ledger. It signs in against the
// same services the API serves, keeps the session token on disk between
// runs, and routes every command through the navigation gate so ledger
// commands are unreachable without a live session.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/goldguard-app/backend/internal/infra/postgres"
	infraredis "github.com/goldguard-app/backend/internal/infra/redis"
	"github.com/goldguard-app/backend/internal/ledger"
	"github.com/goldguard-app/backend/internal/platform/session"
	"github.com/goldguard-app/backend/internal/platform/user"
	"github.com/goldguard-app/backend/pkg/config"
	"github.com/goldguard-app/backend/pkg/logger"
)

const usage = `Usage: goldguard <command> [args]

Session:
  register <email> <name>      create an account and sign in
  login <email>                sign in
  logout                       sign out
  status                       show session state

Ledger (requires a session):
  add <house> <deposit|withdrawal> <amount>   record a transaction
  list                                        show transactions and totals
  delete <id>                                 remove a transaction
  profile [name=..] [age=..] [avatar=..]      show or update the profile
  avatars                                     list the avatar set
`

type app struct {
	gate     *session.Gate
	provider *session.AuthProvider
	ledger   *ledger.Service
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.New(cfg.Env, os.Stderr)

	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "database error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var store ledger.Store
	if cfg.LedgerBackend == config.BackendRedis {
		client, err := infraredis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis error: %v\n", err)
			os.Exit(1)
		}
		defer client.Close()
		store = infraredis.NewStore(client)
	} else {
		store = postgres.NewLedgerRepository(db.Pool)
	}

	ledgerSvc := ledger.NewService(store)
	userSvc := user.NewService(postgres.NewUserRepository(db.Pool), log)
	tokenSvc := session.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	provider := session.NewAuthProvider(userSvc, tokenSvc, session.NewFileTokenSource(tokenPath()),
		session.WithProfileInit(func(ctx context.Context, userID uuid.UUID, name string) error {
			_, err := ledgerSvc.UpdateProfile(ctx, userID, "", ledger.ProfileUpdate{Name: &name})
			return err
		}))

	a := &app{
		provider: provider,
		ledger:   ledgerSvc,
	}
	a.gate = session.NewGate(provider, session.WithReload(func(id session.Identity) {
		// Fresh data on every entry into the signed-in state; nothing is
		// trusted from a previous run.
		if _, _, err := a.ledger.Statement(ctx, id.ID); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load ledger: %v\n", err)
		}
		if _, err := a.ledger.GetProfile(ctx, id.ID, id.Email); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load profile: %v\n", err)
		}
	}))
	defer a.gate.Close()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func tokenPath() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".goldguard", "token")
	}
	return filepath.Join(os.TempDir(), "goldguard-token")
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		if len(args) < 1 {
			return fmt.Errorf("usage: register <email> [name]")
		}
		name := ""
		if len(args) > 1 {
			name = strings.Join(args[1:], " ")
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		id, err := a.provider.SignUp(ctx, args[0], password, name)
		if err != nil {
			return err
		}
		fmt.Printf("registered and signed in as %s\n", id.Email)
		return nil

	case "login":
		if len(args) != 1 {
			return fmt.Errorf("usage: login <email>")
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		id, err := a.provider.SignIn(ctx, args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s\n", id.Email)
		return nil

	case "logout":
		if err := a.provider.SignOut(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil

	case "status":
		a.gate.Start(ctx)
		if id := a.gate.Identity(); id != nil {
			fmt.Printf("%s (%s)\n", a.gate.State(), id.Email)
		} else {
			fmt.Println(a.gate.State())
		}
		return nil

	case "add", "list", "delete", "profile", "avatars":
		id, err := a.requireSession(ctx)
		if err != nil {
			return err
		}
		return a.runLedger(ctx, *id, command, args)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireSession resolves the gate; ledger commands exist only behind it.
func (a *app) requireSession(ctx context.Context) (*session.Identity, error) {
	a.gate.Start(ctx)
	if a.gate.State() != session.GateAuthenticated {
		return nil, fmt.Errorf("not signed in (run: goldguard login <email>)")
	}
	return a.gate.Identity(), nil
}

func (a *app) runLedger(ctx context.Context, id session.Identity, command string, args []string) error {
	switch command {
	case "add":
		if len(args) != 3 {
			return fmt.Errorf("usage: add <house> <deposit|withdrawal> <amount>")
		}
		tx, err := a.ledger.Add(ctx, id.ID, args[0], ledger.Kind(args[1]), args[2])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s at %s (%s)\n", tx.Kind.Label(), tx.Amount, tx.HouseName, tx.ID)
		return nil

	case "list":
		return a.printStatement(ctx, id)

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		txID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid transaction id: %w", err)
		}
		if err := a.ledger.Delete(ctx, id.ID, txID); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "profile":
		if len(args) == 0 {
			return a.printProfile(ctx, id)
		}
		return a.updateProfile(ctx, id, args)

	case "avatars":
		for i, name := range ledger.Avatars() {
			marker := " "
			if i == ledger.DefaultAvatarIndex {
				marker = "*"
			}
			fmt.Printf("%s %d  %s\n", marker, i, name)
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", command)
}

func (a *app) printStatement(ctx context.Context, id session.Identity) error {
	txs, summary, err := a.ledger.Statement(ctx, id.ID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.CreatedAt.Local().Format("2006-01-02 15:04"),
			tx.HouseName,
			tx.Kind.Label(),
			tx.Amount,
			tx.ID,
		)
	}
	w.Flush()

	fmt.Printf("\ndeposits %s  withdrawals %s  net %s\n",
		summary.TotalDeposits, summary.TotalWithdrawals, summary.Net)
	return nil
}

func (a *app) printProfile(ctx context.Context, id session.Identity) error {
	p, err := a.ledger.GetProfile(ctx, id.ID, id.Email)
	if err != nil {
		return err
	}

	fmt.Printf("name    %s\n", p.Name)
	fmt.Printf("email   %s\n", p.Email)
	if p.Age != nil {
		fmt.Printf("age     %d\n", *p.Age)
	}
	fmt.Printf("avatar  %s\n", p.Avatar())
	return nil
}

func (a *app) updateProfile(ctx context.Context, id session.Identity, args []string) error {
	var update ledger.ProfileUpdate
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "name":
			v := value
			update.Name = &v
		case "age":
			v := value
			update.Age = &v
		case "avatar":
			var idx int
			if _, err := fmt.Sscanf(value, "%d", &idx); err != nil {
				return fmt.Errorf("invalid avatar index %q", value)
			}
			update.AvatarIndex = &idx
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}

	p, err := a.ledger.UpdateProfile(ctx, id.ID, id.Email, update)
	if err != nil {
		return err
	}
	fmt.Printf("updated: %s, avatar %s\n", p.Name, p.Avatar())
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(data), nil
}
