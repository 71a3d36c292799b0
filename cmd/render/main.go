// Command render runs one render operation offline: it reads a JSON request,
// renders it with the configured assets and writes the PDF.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"saraban-stamp/internal/config"
	"saraban-stamp/internal/domain/entity"
	"saraban-stamp/internal/engine"
	"saraban-stamp/internal/engine/codec"
	"saraban-stamp/internal/infrastructure/asset"
	"saraban-stamp/internal/infrastructure/httpclient"
	"saraban-stamp/internal/infrastructure/logger"
	"saraban-stamp/internal/infrastructure/repository"
	"saraban-stamp/internal/usecase"
)

func main() {
	op := flag.String("op", "", "Operation: receive-number, command, leave-form or leave-summary")
	in := flag.String("in", "-", "JSON request file, - for stdin")
	out := flag.String("out", "out.pdf", "Output PDF file")
	configFile := flag.String("config", "", "Config file (defaults to ./config.yaml)")
	timeout := flag.Duration("timeout", time.Minute, "Overall render timeout")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	zlog, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	body, err := readInput(*in)
	if err != nil {
		log.Fatalf("Failed to read request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	uc := newUsecase(cfg, zlog)
	result, err := render(ctx, uc, *op, body)
	if err != nil {
		zlog.Error("Render failed",
			zap.String("operation", *op),
			zap.String("error_code", entity.ErrorCode(err)),
			zap.Error(err),
		)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, codec.Decode(result.Document), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s (%d pages, %d bytes)\n", *out, result.PageCount, result.SizeBytes)
}

func newUsecase(cfg *config.Config, zlog *zap.Logger) usecase.RenderUsecase {
	client := httpclient.NewHTTPClient(cfg, zlog)
	store := asset.NewStoreFromConfig(cfg, asset.NewFetcher(client), nil, zlog)
	eng := engine.NewFromConfig(cfg, asset.NewFontCache(store), store, zlog)
	return usecase.NewRenderUsecase(cfg, eng, repository.NewRenderLogRepository(nil, zlog), zlog)
}

func render(ctx context.Context, uc usecase.RenderUsecase, op string, body []byte) (*entity.RenderedDocument, error) {
	switch op {
	case "receive-number":
		var req entity.ReceiveNumberRequest
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return uc.StampReceiveNumber(ctx, &req)
	case "command":
		var req entity.CommandStampRequest
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return uc.StampCommand(ctx, &req)
	case "leave-form":
		var req entity.LeaveFormRequest
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return uc.ComposeLeaveForm(ctx, &req)
	case "leave-summary":
		var req entity.LeaveSummaryRequest
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return uc.ComposeLeaveSummary(ctx, &req)
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", entity.ErrInvalidRequest, op)
	}
}

func decode(body []byte, req interface{}) error {
	if err := json.Unmarshal(body, req); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrInvalidRequest, err)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
