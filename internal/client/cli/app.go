package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/config"
	"github.com/ezymarket/adminctl/internal/client/localdb"
	sessionrepo "github.com/ezymarket/adminctl/internal/client/repositories/session"
	"github.com/ezymarket/adminctl/internal/client/services"
	"github.com/ezymarket/adminctl/internal/client/session"
	"github.com/ezymarket/adminctl/internal/logging"
)

// App holds the wired-up services a command needs. Commands construct one
// per invocation and close it before exiting.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Store

	auth        services.AuthService
	users       *services.UsersService
	groups      *services.GroupsService
	recipes     *services.RecipesService
	ingredients *services.IngredientsService
	units       *services.UnitsService
	tags        *services.TagsService
	dashboard   *services.DashboardService
}

func newApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.New(os.Stderr, cfg.LogLevel)

	if dir := filepath.Dir(cfg.StatePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := localdb.Open(ctx, cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	sess := session.NewStore(sessionrepo.NewSQLiteStorage(db), log)
	if err := sess.Load(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout,
	}, sess, log, newConsoleNotices(os.Stderr))
	if err != nil {
		db.Close()
		return nil, err
	}

	users := services.NewUsersService(client)
	groups := services.NewGroupsService(client)
	recipes := services.NewRecipesService(client)
	ingredients := services.NewIngredientsService(client)
	units := services.NewUnitsService(client)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		session:     sess,
		auth:        services.NewAuthService(client, sess, log),
		users:       users,
		groups:      groups,
		recipes:     recipes,
		ingredients: ingredients,
		units:       units,
		tags:        services.NewTagsService(client),
		dashboard:   services.NewDashboardService(users, groups, recipes, ingredients, units),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// runWithApp wraps a command body with app construction and teardown.
func runWithApp(fn func(ctx context.Context, app *App, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(ctx, app, args)
	}
}
