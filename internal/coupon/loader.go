package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped coupon tables from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a gzipped coupon table and returns a Registry.
// The file holds one "CODE,PERCENT" entry per line; blank lines and lines
// starting with '#' are ignored.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Registry, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	registry, err := readTable(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading coupon file")
		return nil, fmt.Errorf("error reading coupon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", registry.Size()).
		Msg("coupon file loaded successfully")

	return registry, nil
}

// readTable parses "CODE,PERCENT" lines into a registry.
func readTable(ctx context.Context, r io.Reader) (*MapRegistry, error) {
	registry := NewMapRegistry(64)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, pctStr, ok := strings.Cut(line, ",")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			return nil, fmt.Errorf("line %d: expected CODE,PERCENT", lineNo)
		}

		pct, err := strconv.Atoi(strings.TrimSpace(pctStr))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid percentage: %w", lineNo, err)
		}
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("line %d: percentage %d out of range 0-100", lineNo, pct)
		}

		registry.Add(code, pct)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return registry, nil
}
