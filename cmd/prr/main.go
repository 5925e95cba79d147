package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mhenry/prreview/internal/adapter/cli"
	gitadapter "github.com/mhenry/prreview/internal/adapter/git"
	githubadapter "github.com/mhenry/prreview/internal/adapter/github"
	"github.com/mhenry/prreview/internal/adapter/llm"
	"github.com/mhenry/prreview/internal/adapter/llm/anthropic"
	"github.com/mhenry/prreview/internal/adapter/llm/azure"
	"github.com/mhenry/prreview/internal/adapter/llm/custom"
	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
	"github.com/mhenry/prreview/internal/adapter/llm/openai"
	"github.com/mhenry/prreview/internal/adapter/output/markdown"
	"github.com/mhenry/prreview/internal/adapter/store/sqlite"
	"github.com/mhenry/prreview/internal/config"
	"github.com/mhenry/prreview/internal/dedup"
	"github.com/mhenry/prreview/internal/usecase/review"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return
		}
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "prr",
		EnvPrefix:   "PRR",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	apiLogger := buildAPILogger(cfg.Observability.Logging)

	client, err := buildProviderClient(cfg, apiLogger)
	if err != nil {
		return err
	}

	repoDir := cfg.Git.RepositoryDir
	if repoDir == "" {
		repoDir = "."
	}

	orchestrator := review.NewOrchestrator(
		providerAdapter{client: client},
		stdReviewLogger{},
		llm.EstimateTokens,
		review.Options{
			Instructions:       cfg.Review.Instructions,
			MaxCommentsPerFile: cfg.Review.MaxCommentsPerFile,
			Dedup: dedup.Options{
				Proximity:           cfg.Review.Proximity,
				KeywordThreshold:    cfg.Review.KeywordThreshold,
				SimilarityThreshold: cfg.Review.SimilarityThreshold,
				TemplateThreshold:   cfg.Review.TemplateThreshold,
			},
		},
	)

	application := &app{
		orchestrator: orchestrator,
		git:          gitadapter.NewEngine(repoDir),
		writer:       markdown.NewWriter(timestamp),
		repoName:     repositoryName(repoDir),
		outputDir:    cfg.Output.Directory,
	}

	if cfg.GitHub.Token != "" {
		application.github = githubadapter.NewClient(ctx, cfg.GitHub.Token)
	}

	if cfg.Store.Enabled {
		store, err := sqlite.NewStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer store.Close()
		application.store = store
	}

	root := cli.NewRootCommand(cli.Dependencies{
		PullRequests: application,
		Local:        application,
		DefaultOwner: cfg.GitHub.Owner,
		DefaultRepo:  cfg.GitHub.Repo,
		Version:      version,
	})

	return root.ExecuteContext(ctx)
}

// buildProviderClient returns the first enabled provider, checked in a
// fixed order so configuration with several enabled providers behaves
// deterministically.
func buildProviderClient(cfg config.Config, logger llmhttp.Logger) (llmClient, error) {
	retry := buildRetryConfig(cfg.HTTP)
	timeout := parseDuration(cfg.HTTP.Timeout, 60*time.Second)

	for _, name := range []string{"anthropic", "openai", "azure", "custom"} {
		pcfg, ok := cfg.Providers[name]
		if !ok || !pcfg.Enabled {
			continue
		}

		switch name {
		case "anthropic":
			if pcfg.APIKey == "" {
				return nil, fmt.Errorf("provider %s: apiKey is required", name)
			}
			p := anthropic.NewProvider(pcfg.APIKey, pcfg.Model)
			p.SetLogger(logger)
			p.SetRetryConfig(retry)
			return p, nil

		case "openai":
			if pcfg.APIKey == "" {
				return nil, fmt.Errorf("provider %s: apiKey is required", name)
			}
			p := openai.NewProviderFromConfig(openai.ClientConfig{
				APIKey:  pcfg.APIKey,
				Model:   pcfg.Model,
				BaseURL: pcfg.BaseURL,
				Timeout: timeout,
				Retry:   retry,
			})
			p.SetLogger(logger)
			return p, nil

		case "azure":
			if pcfg.BaseURL == "" || pcfg.Deployment == "" {
				return nil, fmt.Errorf("provider %s: baseURL and deployment are required", name)
			}
			p := azure.NewProvider(azure.Config{
				APIKey:     pcfg.APIKey,
				Endpoint:   pcfg.BaseURL,
				Deployment: pcfg.Deployment,
				Model:      pcfg.Model,
			})
			p.SetLogger(logger)
			return p, nil

		case "custom":
			if pcfg.BaseURL == "" {
				return nil, fmt.Errorf("provider %s: baseURL is required", name)
			}
			p := custom.NewProvider(custom.Config{
				APIKey:  pcfg.APIKey,
				Model:   pcfg.Model,
				BaseURL: pcfg.BaseURL,
			})
			p.SetLogger(logger)
			return p, nil
		}
	}

	return nil, errors.New("no provider enabled; configure one under providers in prr.yaml")
}

func buildRetryConfig(httpCfg config.HTTPConfig) llmhttp.RetryConfig {
	retry := llmhttp.DefaultRetryConfig()
	if httpCfg.MaxRetries > 0 {
		retry.MaxRetries = httpCfg.MaxRetries
	}
	retry.InitialBackoff = parseDuration(httpCfg.InitialBackoff, retry.InitialBackoff)
	retry.MaxBackoff = parseDuration(httpCfg.MaxBackoff, retry.MaxBackoff)
	if httpCfg.BackoffMultiplier > 0 {
		retry.Multiplier = httpCfg.BackoffMultiplier
	}
	return retry
}

func buildAPILogger(logCfg config.LoggingConfig) llmhttp.Logger {
	if !logCfg.Enabled {
		return nil
	}

	level := llmhttp.LogLevelInfo
	switch logCfg.Level {
	case "debug":
		level = llmhttp.LogLevelDebug
	case "error":
		level = llmhttp.LogLevelError
	}

	format := llmhttp.LogFormatHuman
	switch logCfg.Format {
	case "json":
		format = llmhttp.LogFormatJSON
	case "":
		if !review.IsOutputTerminal() {
			format = llmhttp.LogFormatJSON
		}
	}

	return llmhttp.NewDefaultLogger(level, format, logCfg.RedactAPIKeys)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prr"))
	}
	return paths
}

// repositoryName derives a display name from the repository directory.
func repositoryName(repoDir string) string {
	abs, err := filepath.Abs(repoDir)
	if err != nil {
		return repoDir
	}
	return filepath.Base(abs)
}

func timestamp() string {
	return time.Now().UTC().Format("20060102T150405Z")
}

// stdReviewLogger writes orchestrator logs through the standard logger.
type stdReviewLogger struct{}

func (stdReviewLogger) LogInfo(_ context.Context, message string, fields map[string]interface{}) {
	log.Printf("[INFO] %s %v", message, fields)
}

func (stdReviewLogger) LogWarning(_ context.Context, message string, fields map[string]interface{}) {
	log.Printf("[WARN] %s %v", message, fields)
}

func logWarning(message string, err error) {
	log.Printf("[WARN] %s: %v", message, err)
}
