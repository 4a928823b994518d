package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/api"
	"github.com/jafarshop/orderflow/internal/api/handlers"
	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
	"github.com/jafarshop/orderflow/internal/integrations"
	"github.com/jafarshop/orderflow/internal/repository/postgres"
	"github.com/jafarshop/orderflow/internal/service"
)

func main() {
	var (
		orderFile  string
		orderJSON  string
		runServer  bool
		port       int
		saveOutput bool
	)

	pflag.StringVarP(&orderFile, "order-file", "f", "", "Path to a Shopify order JSON file")
	pflag.StringVarP(&orderJSON, "order-json", "j", "", "Order JSON string (shell-escaped)")
	pflag.BoolVar(&runServer, "run-server", false, "Run a local webhook receiver")
	pflag.IntVar(&port, "port", 5000, "Port for webhook server (when --run-server)")
	pflag.BoolVar(&saveOutput, "save-output", false, "Save the processing result to the output directory")
	pflag.Parse()

	modes := 0
	if orderFile != "" {
		modes++
	}
	if orderJSON != "" {
		modes++
	}
	if runServer {
		modes++
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "Exactly one of --order-file, --order-json, or --run-server is required")
		pflag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if pflag.CommandLine.Changed("port") {
		cfg.Port = strconv.Itoa(port)
	}

	// Initialize logger
	logger := newLogger(cfg)
	defer logger.Sync()

	processor := buildProcessor(cfg, logger)
	archive := buildArchive(cfg, logger)

	if runServer {
		router := api.NewRouter(cfg, processor, archive, logger)
		logger.Info("Starting webhook receiver",
			zap.String("port", cfg.Port),
			zap.String("path", "/webhook/order-created"),
		)
		if err := router.Run(":" + cfg.Port); err != nil {
			logger.Error("Server failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	var raw []byte
	if orderFile != "" {
		if _, err := os.Stat(orderFile); os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Order file not found:", orderFile)
			os.Exit(2)
		}
		raw, err = os.ReadFile(orderFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read order file: %v\n", err)
			os.Exit(2)
		}
	} else {
		raw = []byte(orderJSON)
	}

	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid order JSON: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	result := processor.Process(ctx, order)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))

	if archive != nil {
		if err := archive.Save(ctx, &result); err != nil {
			logger.Warn("Failed to archive processing result", zap.Error(err))
		}
	}

	if saveOutput {
		path, err := writeOutput(cfg.OutputDir, result, output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Saved result to", path)
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.Environment == "production" {
		logger, _ := zap.NewProduction()
		return logger
	}
	logger, _ := zap.NewDevelopment()
	return logger
}

// buildProcessor wires the real integration clients into the processor.
func buildProcessor(cfg *config.Config, logger *zap.Logger) *service.Processor {
	return service.NewProcessor(
		integrations.NewHarvest(cfg.Harvest, logger),
		integrations.NewTrello(cfg.Trello, logger),
		integrations.NewZoho(cfg.Zoho, logger),
		integrations.NewMailchimp(cfg.Mailchimp, logger),
		integrations.NewMailer(cfg.SMTP, logger),
		cfg.Coupon,
		logger,
	)
}

// buildArchive connects the optional Postgres result archive. Any failure
// here degrades to running without an archive; it is never fatal.
func buildArchive(cfg *config.Config, logger *zap.Logger) handlers.ResultArchiver {
	if cfg.DatabaseURL == "" {
		return nil
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Warn("Result archive disabled: database unreachable", zap.Error(err))
		return nil
	}

	repo := postgres.NewResultRepository(db, logger)
	if err := repo.Migrate(context.Background()); err != nil {
		logger.Warn("Result archive disabled: migration failed", zap.Error(err))
		db.Close()
		return nil
	}

	return repo
}

func writeOutput(dir string, result domain.ProcessingResult, output []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	orderNumber := result.Fields.OrderNumber
	if orderNumber == "" {
		orderNumber = "unknown"
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	path := filepath.Join(dir, fmt.Sprintf("%s_order_%s.json", ts, orderNumber))

	if err := os.WriteFile(path, output, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
