// runwayctl 維運指令：資料庫 migration、匯入種子資料、指定管理員
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"runway-tickets/config"
	"runway-tickets/internal/cache"
	"runway-tickets/internal/database"
	"runway-tickets/internal/identity"
	"runway-tickets/internal/repository"
	"runway-tickets/internal/seed"
	"runway-tickets/internal/service"
	"runway-tickets/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const usage = `usage: runwayctl <command> [flags]

commands:
  migrate up|down            apply or roll back one schema migration
  seed shows [--file path]   upsert shows and ticket types from YAML
  seed videos [--file path]  upsert videos from YAML
  make-admin <email>         promote a signed-in user to admin
`

var errUsage = errors.New("invalid arguments")

// command 解析後的子指令
type command struct {
	name   string
	target string
	file   string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cmd, err := parseArgs(args)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(out, usage)
		return nil
	}
	if err != nil {
		return err
	}

	_ = godotenv.Load()
	_ = logger.SetLevel(os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConfig := config.GetDatabaseConfig()
	switch cmd.name {
	case "migrate":
		return runMigrate(cmd, dbConfig, out)
	case "seed":
		return runSeed(ctx, cmd, dbConfig, out)
	case "make-admin":
		return runMakeAdmin(ctx, cmd, dbConfig, out)
	}
	return errUsage
}

func parseArgs(args []string) (command, error) {
	var cmd command
	flagSet := pflag.NewFlagSet("runwayctl", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&cmd.file, "file", "", "YAML file to seed from (default: embedded data)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cmd, err
		}
		return cmd, fmt.Errorf("%w: %v", errUsage, err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		return cmd, pflag.ErrHelp
	}

	rest := flagSet.Args()
	if len(rest) != 2 {
		return cmd, fmt.Errorf("%w: expected a command and one argument", errUsage)
	}
	cmd.name, cmd.target = rest[0], rest[1]

	switch cmd.name {
	case "migrate":
		if cmd.target != "up" && cmd.target != "down" {
			return cmd, fmt.Errorf("%w: migrate takes up or down", errUsage)
		}
	case "seed":
		if cmd.target != "shows" && cmd.target != "videos" {
			return cmd, fmt.Errorf("%w: seed takes shows or videos", errUsage)
		}
	case "make-admin":
		if cmd.file != "" {
			return cmd, fmt.Errorf("%w: --file is only valid for seed", errUsage)
		}
	default:
		return cmd, fmt.Errorf("%w: unknown command %q", errUsage, cmd.name)
	}
	return cmd, nil
}

func runMigrate(cmd command, dbConfig config.DatabaseConfig, out io.Writer) error {
	migrator, err := database.NewMigrator(dbConfig.DSN())
	if err != nil {
		return err
	}
	defer migrator.Close()

	if cmd.target == "up" {
		err = migrator.Up()
	} else {
		err = migrator.Down()
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cmd.target, err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}

func runSeed(ctx context.Context, cmd command, dbConfig config.DatabaseConfig, out io.Writer) error {
	pool, err := database.InitDatabase(&dbConfig)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer pool.Close()

	showCache, closeCache := seedCache()
	defer closeCache()

	seeder := seed.NewSeeder(
		pool,
		repository.NewShowRepository(pool),
		repository.NewTicketTypeRepository(pool),
		repository.NewVideoRepository(pool),
		showCache,
	)

	var count int
	switch cmd.target {
	case "shows":
		data, err := seed.ReadFile(cmd.file, seed.DefaultShows())
		if err != nil {
			return err
		}
		shows, err := seed.ParseShows(data)
		if err != nil {
			return err
		}
		count, err = seeder.SeedShows(ctx, shows)
		fmt.Fprintf(out, "seeded %d of %d shows\n", count, len(shows))
		return err
	default:
		data, err := seed.ReadFile(cmd.file, seed.DefaultVideos())
		if err != nil {
			return err
		}
		videos, err := seed.ParseVideos(data)
		if err != nil {
			return err
		}
		count, err = seeder.SeedVideos(ctx, videos)
		fmt.Fprintf(out, "seeded %d of %d videos\n", count, len(videos))
		return err
	}
}

// seedCache Redis 不可用時仍可匯入，公開列表等 TTL 過期後更新
func seedCache() (cache.ShowCache, func()) {
	log := logger.WithComponent("runwayctl")
	redisConfig, err := config.GetRedisConfig()
	if err != nil {
		log.Warn("invalid redis config, published show cache will not be invalidated", zap.Error(err))
		return cache.NoopShowCache{}, func() {}
	}
	rdb, err := database.InitRedis(&redisConfig)
	if err != nil {
		log.Warn("redis unavailable, published show cache will not be invalidated", zap.Error(err))
		return cache.NoopShowCache{}, func() {}
	}
	return cache.NewRedisShowCache(rdb, cache.DefaultPublishedShowsTTL), func() { _ = rdb.Close() }
}

func runMakeAdmin(ctx context.Context, cmd command, dbConfig config.DatabaseConfig, out io.Writer) error {
	pool, err := database.InitDatabase(&dbConfig)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer pool.Close()

	user, err := newUserService(pool).MakeAdmin(ctx, cmd.target)
	if err != nil {
		return fmt.Errorf("make admin %s: %w", cmd.target, err)
	}
	fmt.Fprintf(out, "%s (%s) is now %s\n", user.Email, user.ID, user.Role)
	return nil
}

// newUserService CLI 不走 OAuth，exchanger 為 nil
func newUserService(pool *pgxpool.Pool) service.UserService {
	var exchanger identity.CodeExchanger
	return service.NewUserService(repository.NewUserRepository(pool), exchanger)
}
