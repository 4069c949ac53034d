package menu

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const menuSeedApplication = "menu"

type bootstrapSeedDocument struct {
	Items []menuItemSeed `json:"items"`
}

type menuItemSeed struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

func loadMenuSeeds(seedFS embed.FS) ([]menuItemSeed, error) {
	seedBytes, err := seedFS.ReadFile("seed.json")
	if err != nil {
		return nil, fmt.Errorf("read seed.json: %w", err)
	}

	if len(seedBytes) == 0 {
		return nil, errors.New("menu seed file is empty")
	}

	var doc bootstrapSeedDocument
	if err := json.Unmarshal(seedBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode menu seed file: %w", err)
	}

	if len(doc.Items) == 0 {
		return nil, errors.New("menu seed file does not contain items")
	}

	return doc.Items, nil
}

// ApplyMenuSeeds ensures the bootstrap menu items exist.
func ApplyMenuSeeds(ctx context.Context, repo MenuItemRepo, seedFS embed.FS, logger apt.Logger) error {
	if repo == nil {
		return errors.New("menu item repository is required")
	}

	seedDocs, err := loadMenuSeeds(seedFS)
	if err != nil {
		return err
	}

	seedDefs, err := buildMenuSeedDefinitions(seedDocs, repo, logger)
	if err != nil {
		return err
	}
	if len(seedDefs) == 0 {
		logger.Info("No menu seeds to apply")
		return nil
	}

	tracker, err := trackerFromRepo(repo)
	if err != nil {
		return err
	}

	logger.Info("Applying menu seeds")
	if err := seed.Apply(ctx, tracker, seedDefs, menuSeedApplication); err != nil {
		return err
	}
	logger.Info("Menu seeds applied successfully")
	return nil
}

func trackerFromRepo(repo MenuItemRepo) (seed.Tracker, error) {
	provider, ok := repo.(mongoDatabaseProvider)
	if !ok {
		return nil, errors.New("menu item repository does not expose MongoDB access for seeding")
	}
	db := provider.GetDatabase()
	if db == nil {
		return nil, errors.New("menu item repository database is not initialized")
	}
	return seed.NewMongoTracker(db), nil
}

type mongoDatabaseProvider interface {
	GetDatabase() *mongo.Database
}

func buildMenuSeedDefinitions(raw []menuItemSeed, repo MenuItemRepo, logger apt.Logger) ([]seed.Seed, error) {
	var defs []seed.Seed

	for _, s := range raw {
		seedData := s
		if strings.TrimSpace(seedData.Name) == "" {
			logger.Info("Skipping seed menu item with empty name")
			continue
		}

		logger.Info("Including seed menu item", "name", seedData.Name, "category", seedData.Category, "price", seedData.Price)

		seedID := fmt.Sprintf("2026-08-01_menu_item_%s", seedIdentifier(seedData.Name))
		description := fmt.Sprintf("Ensure menu item %s exists", seedData.Name)

		defs = append(defs, seed.Seed{
			ID:          seedID,
			Description: description,
			Run: func(ctx context.Context) error {
				return seedData.ensureItem(ctx, repo, logger)
			},
		})
	}

	return defs, nil
}

func seedIdentifier(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}

	replacer := strings.NewReplacer("-", "_", " ", "_", "/", "_", "\\", "_")
	value = replacer.Replace(value)

	var builder strings.Builder
	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			builder.WriteRune(r)
		}
	}

	result := builder.String()
	if result == "" {
		return "seed"
	}
	return result
}

func (s menuItemSeed) ensureItem(ctx context.Context, repo MenuItemRepo, logger apt.Logger) error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return errors.New("menu item name is required")
	}

	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("look up existing menu item %s: %w", name, err)
	}
	if existing != nil {
		logger.Info("Seed menu item already exists", "name", name)
		return nil
	}

	item := NewMenuItem()
	item.Name = name
	item.Category = s.Category
	item.Type = s.Type
	item.Price = s.Price
	item.Description = s.Description
	item.BeforeCreate()

	if err := repo.Create(ctx, item); err != nil {
		return fmt.Errorf("create seed menu item %s: %w", name, err)
	}

	logger.Info("Seed menu item created", "name", name, "id", item.ID.String())
	return nil
}

// SeedingFunc returns a lifecycle OnStart-compatible function which starts
// applying menu seeds in the background.
func SeedingFunc(seedCtx context.Context, repo MenuItemRepo, seedFS embed.FS, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		logger.Info("Starting menu seeding in background")
		go func() {
			if err := ApplyMenuSeeds(seedCtx, repo, seedFS, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("❌ Menu seeds failed: %v", err)
			} else if err == nil {
				logger.Info("✓ Menu seeding completed successfully")
			}
		}()
		return nil
	}
}

// StopFunc returns a lifecycle OnStop-compatible function which cancels any
// background seeding goroutine.
func StopFunc(cancelFunc context.CancelFunc) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if cancelFunc != nil {
			cancelFunc()
		}
		return nil
	}
}
