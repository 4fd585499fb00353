// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, storage, the model
// provider) and wires the generation pipeline. This is the only place that
// knows about every module at once.
package main

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/mailcraft/pkg/ai/llm"
	"github.com/Abraxas-365/mailcraft/pkg/ai/providers/aianthropic"
	"github.com/Abraxas-365/mailcraft/pkg/ai/providers/aigemini"
	"github.com/Abraxas-365/mailcraft/pkg/ai/providers/aiopenai"
	"github.com/Abraxas-365/mailcraft/pkg/config"
	"github.com/Abraxas-365/mailcraft/pkg/email/generate"
	"github.com/Abraxas-365/mailcraft/pkg/email/markup"
	"github.com/Abraxas-365/mailcraft/pkg/email/store"
	"github.com/Abraxas-365/mailcraft/pkg/email/store/storepg"
	"github.com/Abraxas-365/mailcraft/pkg/email/store/storeredis"
	"github.com/Abraxas-365/mailcraft/pkg/fsx"
	"github.com/Abraxas-365/mailcraft/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/mailcraft/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/mailcraft/pkg/logx"
	"github.com/Abraxas-365/mailcraft/pkg/notifx"
	"github.com/Abraxas-365/mailcraft/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/mailcraft/pkg/notifx/notifxses"
)

// Container holds shared infrastructure and the composed pipeline.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// Pipeline
	Generator *generate.Generator
	Compiler  markup.Compiler
	Emails    store.Repository
	Drafts    store.DraftCache
	Exporter  fsx.Exporter
	Notifier  *notifx.Client
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initPipeline()

	logx.Info("✅ Application container initialized")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("  ✅ Database connected")

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required)", err)
	}
	logx.Info("  ✅ Redis connected")

	c.initStorage()
	c.initNotifier()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initStorage() {
	switch c.Config.Storage.Mode {
	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
			awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.Exporter = fsxs3.NewS3Exporter(s3.NewFromConfig(awsCfg),
			c.Config.Storage.Bucket, c.Config.Storage.Prefix)
		logx.Infof("  ✅ S3 export configured (bucket: %s)", c.Config.Storage.Bucket)

	case "local":
		exporter, err := fsxlocal.NewLocalExporter(c.Config.Storage.LocalDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local export directory: %v", err)
		}
		c.Exporter = exporter
		logx.Infof("  ✅ Local export configured (path: %s)", c.Config.Storage.LocalDir)

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", c.Config.Storage.Mode)
	}
}

func (c *Container) initNotifier() {
	switch c.Config.Notifx.Provider {
	case "ses":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
			awsConfig.WithRegion(c.Config.Notifx.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config for SES: %v", err)
		}
		provider := notifxses.NewSESProvider(ses.NewFromConfig(awsCfg), c.Config.Notifx.FromAddress)
		c.Notifier = notifx.NewClient(provider, c.Config.Notifx.FromAddress)
		logx.Info("  ✅ SES notifier configured")

	default:
		c.Notifier = notifx.NewClient(notifxconsole.NewConsoleProvider(), c.Config.Notifx.FromAddress)
		logx.Info("  ✅ Console notifier configured (dev mode)")
	}
}

func (c *Container) initPipeline() {
	logx.Info("📦 Initializing pipeline...")

	provider := c.buildProvider()
	c.Generator = generate.New(provider,
		generate.WithModel(c.Config.LLM.Model),
		generate.WithMaxAttempts(c.Config.LLM.MaxAttempts),
		generate.WithTimeout(c.Config.LLM.Timeout),
	)
	c.Compiler = markup.NewHTMLCompiler()
	c.Emails = storepg.NewPostgresRepository(c.DB)
	c.Drafts = storeredis.NewRedisDraftCache(c.Redis)

	logx.Info("✅ Pipeline initialized")
}

// buildProvider returns nil when no key is configured; the generator then
// classifies every call as LLM_CONFIG_MISSING instead of crashing at boot.
func (c *Container) buildProvider() llm.Provider {
	cfg := c.Config.LLM
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logx.Warn("  ⚠️ ANTHROPIC_API_KEY not set, generation is disabled")
			return nil
		}
		logx.Info("  ✅ Anthropic provider configured")
		return aianthropic.NewAnthropicProvider(cfg.AnthropicAPIKey)

	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logx.Warn("  ⚠️ GEMINI_API_KEY not set, generation is disabled")
			return nil
		}
		provider, err := aigemini.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			logx.Fatalf("Failed to initialize Gemini provider: %v", err)
		}
		logx.Info("  ✅ Gemini provider configured")
		return provider

	default:
		if cfg.OpenAIAPIKey == "" {
			logx.Warn("  ⚠️ OPENAI_API_KEY not set, generation is disabled")
			return nil
		}
		logx.Info("  ✅ OpenAI provider configured")
		return aiopenai.NewOpenAIProvider(cfg.OpenAIAPIKey)
	}
}

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
