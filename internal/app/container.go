package app

import (
	"context"
	"errors"
	"fmt"

	"greenleaf/internal/config"
	"greenleaf/internal/database"
	"greenleaf/internal/database/migration"
	dbpostgres "greenleaf/internal/database/postgres"
	"greenleaf/internal/database/seeder"
	"greenleaf/internal/greenscore"
	"greenleaf/internal/infrastructure/cache"
	"greenleaf/internal/infrastructure/classifier"
	"greenleaf/internal/infrastructure/mailer"
	"greenleaf/internal/infrastructure/oauth"
	"greenleaf/internal/logger"
	"greenleaf/internal/pkg/jwt"
	"greenleaf/internal/repository"
	"greenleaf/internal/rescore"
	"greenleaf/internal/usecase"
	ucauth "greenleaf/internal/usecase/auth"
	"greenleaf/internal/ws"
	"greenleaf/migrations"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency shared by the server and the CLI.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Redis *cache.Redis
	JWT   *jwt.HMACService
	Hub   *ws.Hub

	Evaluator *greenscore.Evaluator

	Jobs      *usecase.Jobs
	Companies *usecase.Companies
	Users     *usecase.Users
	Auth      *usecase.Auth
	Rescore   *usecase.Rescore

	closers []func() error
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)
	c := &Container{Config: cfg, Logger: log}

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.closers = append(c.closers, db.Close)

	if cfg.Database.RunMigrations {
		if err := c.Migrate(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Redis = cache.NewRedis(ctx, cfg.Redis, log)
	c.closers = append(c.closers, c.Redis.Close)

	clf, closeClassifier, err := classifier.New(ctx, cfg.Classifier, log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("classifier: %w", err)
	}
	c.closers = append(c.closers, closeClassifier)

	policy, err := greenscore.ResolvePolicy(cfg.GreenScore.PolicyFile, cfg.GreenScore.MissingESGPolicy)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	companyRepo := repository.NewPostgresCompanyRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	identityRepo := repository.NewPostgresIdentityRepository(db)

	c.Evaluator = greenscore.NewEvaluator(companyRepo, clf, policy, log)

	c.Hub = ws.NewHub(log)
	notifier := ws.NewNotifier(c.Hub)

	c.Companies = usecase.NewCompaniesUsecase(companyRepo, log)
	c.Jobs = usecase.NewJobsUsecase(jobRepo, companyRepo, c.Evaluator, c.Redis, cfg.Redis.TTL, notifier, log)
	c.Users = usecase.NewUsersUsecase(userRepo, jobRepo)

	svc := rescore.NewService(jobRepo, c.Evaluator, rescore.Options{
		Workers: cfg.GreenScore.RescoreWorkers,
		RPS:     cfg.GreenScore.RescoreRPS,
	}, log)
	c.Rescore = usecase.NewRescoreUsecase(c.Companies, c.Jobs, svc, c.Redis, log)

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	m, err := mailer.New(ctx, cfg.Mail, log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mailer: %w", err)
	}

	signIn := ucauth.NewService(identityRepo, userRepo, companyRepo, log)
	c.Auth = usecase.NewAuthUsecase(signIn, identityRepo, c.JWT, c.Redis, m, oauth.NewRegistry(cfg.OAuth, cfg.App.PublicURL), usecase.AuthOptions{
		PublicURL:     cfg.App.PublicURL,
		MagicLinkTTL:  cfg.Auth.MagicLinkTTL,
		OAuthStateTTL: cfg.Auth.OAuthStateTTL,
	}, log)

	if cfg.Database.RunSeeders {
		if err := c.Seed(ctx, false); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

// Migrate applies the embedded SQL migrations.
func (c *Container) Migrate(ctx context.Context) error {
	r := migration.Runner{Source: migrations.FS, Logger: c.Logger}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Seed inserts demo companies, and scored demo jobs when withJobs is set.
func (c *Container) Seed(ctx context.Context, withJobs bool) error {
	var scorer seeder.Scorer
	if withJobs && c.Evaluator != nil {
		scorer = c.Evaluator
	}
	r := seeder.Runner{Seeders: seeder.Defaults(scorer), Logger: c.Logger}
	return r.Run(ctx, c.DB)
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
