package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ahorros.backend/internal/config"
	"ahorros.backend/internal/domain/entities"
	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/infrastructure/cache"
	"ahorros.backend/internal/infrastructure/datasources"
	"ahorros.backend/internal/infrastructure/repositories"
	"ahorros.backend/internal/usecases"
	"ahorros.backend/pkg/jwt"
)

type seedRuntime interface {
	GetPrimary(ctx context.Context) (*entities.Event, error)
	ListAdmins(ctx context.Context) ([]*entities.User, error)
	RegisterFirstAdmin(ctx context.Context, input *entities.RegisterUserInput) (*entities.AuthResponse, error)
	CreateEvent(ctx context.Context, adminID uuid.UUID, input *entities.CreateEventInput) (*entities.Event, error)
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (seedRuntime, io.Closer, error)
	out     io.Writer
}

type seedRuntimeImpl struct {
	*usecases.AuthUsecase
	events *usecases.EventUsecase
	users  *repositories.UserRepository
}

func (r seedRuntimeImpl) GetPrimary(ctx context.Context) (*entities.Event, error) {
	return r.events.GetPrimary(ctx)
}

func (r seedRuntimeImpl) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	return r.users.ListByRole(ctx, entities.UserRoleAdmin)
}

func (r seedRuntimeImpl) CreateEvent(ctx context.Context, adminID uuid.UUID, input *entities.CreateEventInput) (*entities.Event, error) {
	return r.events.Create(ctx, adminID, input)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (seedRuntime, io.Closer, error) {
			db, err := datasources.NewConnection(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			userRepo := repositories.NewUserRepository(db)
			eventRepo := repositories.NewEventRepository(db)
			depositRepo := repositories.NewDepositRepository(db)
			uow := repositories.NewUnitOfWork(db)
			jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

			return seedRuntimeImpl{
				AuthUsecase: usecases.NewAuthUsecase(userRepo, jwtService, cfg.Savings.DefaultPlan),
				events:      usecases.NewEventUsecase(eventRepo, userRepo, depositRepo, uow, cache.NewRankingCache(nil, 0)),
				users:       userRepo,
			}, sqlDB, nil
		},
		out: os.Stdout,
	}
}

// defaultEvents are created alongside the primary event
func defaultEvents() []entities.CreateEventInput {
	return []entities.CreateEventInput{
		{
			Name:        "Campamento Kingdom 2026",
			Description: "El evento principal de ahorro para el campamento del reino",
			Goal:        decimal.NewFromInt(500),
			Emoji:       "🎪",
			IsPrimary:   true,
		},
		{
			Name:        "Fondo de Emergencia",
			Description: "Para gastos imprevistos y emergencias",
			Goal:        decimal.NewFromInt(200),
			Emoji:       "🆘",
		},
		{
			Name:        "Viaje Familiar",
			Description: "Ahorro para viaje familiar a fin de año",
			Goal:        decimal.NewFromInt(1000),
			Emoji:       "✈️",
		},
	}
}

func runSeed(args []string, deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("seed-events", flag.ContinueOnError)
	nameFlag := fs.String("admin-name", "Administrator", "name of the admin created when none exists")
	phoneFlag := fs.String("admin-phone", "", "phone of the admin created when none exists")
	passwordFlag := fs.String("admin-password", "", "password of the admin created when none exists")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	primary, err := runtime.GetPrimary(ctx)
	if err == nil {
		_, _ = fmt.Fprintf(deps.out, "Primary event already exists: %s\n", primary.Name)
		return nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to load primary event: %w", err)
	}

	adminID, err := resolveAdmin(ctx, runtime, *nameFlag, *phoneFlag, *passwordFlag, deps.out)
	if err != nil {
		return err
	}

	for _, input := range defaultEvents() {
		input := input
		event, err := runtime.CreateEvent(ctx, adminID, &input)
		if err != nil {
			return fmt.Errorf("failed creating event %q: %w", input.Name, err)
		}
		_, _ = fmt.Fprintf(deps.out, "Event created: %s (%s)\n", event.Name, event.ID)
	}
	return nil
}

func resolveAdmin(ctx context.Context, runtime seedRuntime, name, phone, password string, out io.Writer) (uuid.UUID, error) {
	admins, err := runtime.ListAdmins(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) > 0 {
		return admins[0].ID, nil
	}

	if phone == "" || password == "" {
		return uuid.Nil, fmt.Errorf("no admin exists: --admin-phone and --admin-password are required")
	}
	resp, err := runtime.RegisterFirstAdmin(ctx, &entities.RegisterUserInput{
		Name:     name,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed creating admin: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Admin created: %s\n", resp.User.Phone)
	return resp.User.ID, nil
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
