package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/CondeSun/i5Req/internal/config"
	"github.com/CondeSun/i5Req/internal/manifest"
	"github.com/CondeSun/i5Req/pkg/i5"
	"github.com/CondeSun/i5Req/pkg/request"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"i5.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Send struct {
		Manifest string `arg:"" help:"Batch manifest file"`
		Async    bool   `help:"Submit in the background and wait for the outcome"`
	} `cmd:"" help:"Validate a batch manifest and submit it to the Interface5 endpoint"`

	Validate struct {
		Manifest string `arg:"" help:"Batch manifest file"`
		Print    bool   `short:"p" help:"Print the request body on success"`
	} `cmd:"" help:"Validate a batch manifest without submitting it"`

	Init struct {
		Force bool `help:"Overwrite existing files"`
	} `cmd:"" help:"Initialize a starter configuration file and batch manifest"`
}

func main() {
	// Env vars referenced from the config file may live in a local .env.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "send <manifest>":
		if err := runSend(CLI.Config, CLI.Send.Manifest, CLI.Send.Async); err != nil {
			slog.Error("Send failed", "error", err)
			os.Exit(1)
		}
	case "validate <manifest>":
		if err := runValidate(CLI.Validate.Manifest, CLI.Validate.Print); err != nil {
			slog.Error("Validation failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
	}
}

func runSend(configPath, manifestPath string, async bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if !CLI.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.Logging.SlogLevel(),
		})))
	}

	validated, err := loadValidated(manifestPath)
	if err != nil {
		return err
	}

	httpsCfg, err := cfg.HTTPSConfig()
	if err != nil {
		return fmt.Errorf("building transport configuration: %w", err)
	}
	client, err := i5.NewClient(&i5.ClientConfig{
		HTTPSConfig:     httpsCfg,
		RetentionWindow: cfg.Client.RetentionWindowDuration(),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	endpoint := cfg.I5Endpoint()
	slog.Info("Submitting batch",
		"operation", validated.Name(),
		"documents", validated.DocumentCount(),
		"endpoint", endpoint.String(),
		"async", async)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var receipt *i5.Receipt
	if async {
		id, err := client.SubmitAsync(ctx, validated, endpoint)
		if err != nil {
			return err
		}
		slog.Info("Submission queued", "submission_id", id)

		sub, err := client.Wait(ctx, id)
		if err != nil {
			return err
		}
		if sub.Err != "" {
			return fmt.Errorf("submission %s failed: %s", id, sub.Err)
		}
		receipt = &i5.Receipt{StatusCode: sub.StatusCode, Body: sub.Receipt}
	} else {
		receipt, err = client.Submit(ctx, validated, endpoint)
		if err != nil {
			return err
		}
	}

	slog.Info("Batch accepted", "status", receipt.StatusCode)
	if len(receipt.Body) > 0 {
		fmt.Println(string(receipt.Body))
	}
	return nil
}

func runValidate(manifestPath string, print bool) error {
	validated, err := loadValidated(manifestPath)
	if err != nil {
		return err
	}

	slog.Info("Manifest is valid",
		"operation", validated.Name(),
		"documents", validated.DocumentCount())

	if print {
		body, err := validated.Body()
		if err != nil {
			return err
		}
		fmt.Println(string(body))
	}
	return nil
}

func runInit(configPath string, force bool) error {
	slog.Info("Initializing configuration", "path", configPath, "force", force)
	if err := config.Init(configPath, force); err != nil {
		return err
	}

	manifestPath := filepath.Join(filepath.Dir(configPath), "batch.yaml")
	slog.Info("Writing starter manifest", "path", manifestPath)
	return manifest.Init(manifestPath, force)
}

// loadValidated reads a manifest, builds the request, and runs it
// through validation. Attachment paths resolve relative to the
// manifest's directory.
func loadValidated(manifestPath string) (*request.ValidatedRequest, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	req, err := m.BuildRequest(filepath.Dir(manifestPath))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	validated, err := req.Validate()
	if err != nil {
		return nil, err
	}
	return validated, nil
}
