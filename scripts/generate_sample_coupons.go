package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Writes data/coupons/coupons.gz, a gzipped CODE,PERCENT table readable by
// the coupon file loader. Point COUPON_FILE at it, or upload it under
// S3_PREFIX when S3 is enabled.
func main() {
	dataDir := "data/coupons"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	coupons := []struct {
		code    string
		percent int
	}{
		{"WELCOME10", 10},
		{"EDUCK20", 20},
		{"STUDENT50", 50},
		{"BLACKFRIDAY70", 70},
		{"SCHOLARSHIP100", 100},
	}

	filePath := filepath.Join(dataDir, "coupons.gz")
	lines := make([]string, 0, len(coupons)+1)
	lines = append(lines, "# code,percent")
	for _, c := range coupons {
		lines = append(lines, fmt.Sprintf("%s,%d", c.code, c.percent))
	}

	if err := createCouponFile(filePath, lines); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d coupons\n", filePath, len(coupons))
	for _, c := range coupons {
		fmt.Printf("  - %-15s %3d%%\n", c.code, c.percent)
	}
}

func createCouponFile(filePath string, lines []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		if _, err := gzipWriter.Write([]byte(line + "\n")); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	return nil
}
