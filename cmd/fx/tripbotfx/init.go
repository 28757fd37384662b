package tripbotfx

import (
	"context"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"ceyloncircuit/internal/api/controllers"
	"ceyloncircuit/internal/repositories"
	"ceyloncircuit/internal/services"
	"ceyloncircuit/pkg/memcache"
	"ceyloncircuit/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		provideSessionCache,
		provideSessionStore,
		provideCompletionClient,
		provideTripBotService,
		provideTripBotController),
	fx.Invoke(runSessionJanitor),
)

func provideSessionCache() *memcache.SessionCache {
	return memcache.NewSessionCache()
}

func provideSessionStore(cache *memcache.SessionCache) memcache.SessionStore {
	return cache
}

// provideCompletionClient picks the completion provider from the
// environment, defaulting to the free-tier Gemini when its key is set.
func provideCompletionClient() utils.CompletionClientInterface {
	provider := os.Getenv("COMPLETION_PROVIDER")
	if provider == "" {
		if os.Getenv("GEMINI_API_KEY") != "" {
			provider = "gemini"
		} else {
			provider = "openai"
		}
	}

	switch strings.ToLower(provider) {
	case "gemini":
		client, err := utils.NewGeminiClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		log.Println("Using Gemini completion client")
		return client
	case "openai":
		log.Println("Using OpenAI completion client")
		return utils.NewOpenAIClient()
	default:
		log.Fatalf("Unsupported completion provider: %s. Use 'openai' or 'gemini'", provider)
		return nil
	}
}

func provideTripBotService(
	store memcache.SessionStore,
	catalogService services.CatalogServiceInterface,
	completions utils.CompletionClientInterface,
	embeddingRepo repositories.DestinationEmbeddingRepository,
) services.TripBotServiceInterface {
	return services.NewTripBotService(store, catalogService, completions, embeddingRepo)
}

func provideTripBotController(
	tripBotService services.TripBotServiceInterface,
) *controllers.TripBotController {
	return controllers.NewTripBotController(tripBotService)
}

func runSessionJanitor(lc fx.Lifecycle, cache *memcache.SessionCache) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			cache.StartJanitor(memcache.SweepInterval, memcache.SessionTTL)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cache.StopJanitor()
			return nil
		},
	})
}
