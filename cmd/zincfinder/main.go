// Package main is the zincfinder CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zincsforboats/zincfinder/internal/advisor"
	"github.com/zincsforboats/zincfinder/internal/catalog"
	"github.com/zincsforboats/zincfinder/internal/config"
	"github.com/zincsforboats/zincfinder/internal/models"
	"github.com/zincsforboats/zincfinder/internal/respond"
	"github.com/zincsforboats/zincfinder/internal/server"
	"github.com/zincsforboats/zincfinder/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/zincfinder/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if
// neither exists the service runs from defaults and environment variables,
// matching the original env-only deployment.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg, defErr := config.Default()
			if defErr != nil {
				return nil, "", defErr
			}
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "version", "--version", "-v":
		fmt.Printf("zincfinder version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (parsed query fields, upstream calls, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("protocol", cfg.Shop.Protocol),
		zap.Bool("pagination", cfg.Reply.PaginationOrDefault()),
		zap.Bool("advice", cfg.Advice.EnabledOrDefault()),
		zap.Bool("debug", debugMode),
	)

	catalogClient, err := catalog.New(&cfg.Shop)
	if err != nil {
		logger.Fatal("Failed to initialize catalog client", zap.Error(err))
	}

	var adv respond.Advisor
	if cfg.Advice.EnabledOrDefault() {
		adv = advisor.NewClient(&cfg.Advice)
	}

	composer := respond.NewComposer(cfg.Shop.StoreURL, cfg.Reply.PaginationOrDefault())
	engine := respond.NewEngine(catalogClient, adv, composer, logger)

	srv := server.NewServer(engine, &cfg.Server, &cfg.Reply, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildAskQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildAskQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:5000", "server URL")
	page := fs.Int("page", 1, "result page (1-indexed)")
	perPage := fs.Int("per-page", models.DefaultPerPage, "results per page")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: zincfinder ask [flags] <query>")
		os.Exit(1)
	}
	query := buildAskQuery(fs.Args())
	if query == "" {
		fmt.Println("Usage: zincfinder ask [flags] <query>")
		os.Exit(1)
	}

	reply, err := askViaHTTP(*serverURL, query, *page, *perPage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply.Message)
	if reply.TotalPages > 1 {
		fmt.Printf("\n(page %d of %d)\n", reply.CurrentPage, reply.TotalPages)
	}
}

func askViaHTTP(serverURL, query string, page, perPage int) (*models.Reply, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	resp, err := http.Get(serverURL + "/get_response?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var out struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, out.Error)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	var reply models.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &reply, nil
}

func printUsage() {
	fmt.Println(`zincfinder - Product lookup API for the Boat Zincs storefront

Usage:
  zincfinder server [flags]        Start the HTTP server
  zincfinder ask [flags] <query>   Send a query to a running server
  zincfinder version               Show version
  zincfinder help                  Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/zincfinder/config.yaml)
  --debug            Enable debug logging (parsed query fields, upstream calls, etc.)

Ask Flags:
  --server string    Server URL (default: http://localhost:5000)
  --page int         Result page, 1-indexed (default: 1)
  --per-page int     Results per page (default: 10)

Environment:
  SHOPIFY_SHOP_NAME, SHOPIFY_ACCESS_TOKEN, SHOPIFY_ADMIN_TOKEN,
  WEBSITE_URL, OPENAI_API_KEY, PORT override the config file.

Examples:
  zincfinder server
  zincfinder ask zinc plate 2005 Hewescraft 16 Sportsman
  zincfinder ask --page 2 --per-page 5 "boat stands"`)
}
