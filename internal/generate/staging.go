// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generate

import (
	"fmt"
	"log/slog"
	"os"
)

// beginStaging creates a fresh sibling staging dir: <output>_stage.
func beginStaging(outputDir string) (string, error) {
	stage := outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return "", fmt.Errorf("clear staging: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return "", fmt.Errorf("create staging: %w", err)
	}
	slog.Debug("staging directory ready", "staging", stage, "final", outputDir)
	return stage, nil
}

// finalizeStaging promotes the staging dir to the output location:
//  1. move the existing output (if any) to <output>.prev;
//  2. rename staging to output;
//  3. remove the backup.
func finalizeStaging(stage, outputDir string) error {
	prev := outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	if _, err := os.Stat(outputDir); err == nil {
		if err := os.Rename(outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(stage, outputDir); err != nil {
		// Put the previous output back so readers never see it missing.
		if _, statErr := os.Stat(prev); statErr == nil {
			_ = os.Rename(prev, outputDir)
		}
		return fmt.Errorf("promote staging: %w", err)
	}
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("failed to remove previous output", "path", prev, "error", err)
	}
	return nil
}

// abortStaging removes the staging dir after a failed build.
func abortStaging(stage string) {
	if err := os.RemoveAll(stage); err != nil {
		slog.Warn("failed to remove staging directory after abort", "staging", stage, "error", err)
		return
	}
	slog.Debug("removed staging directory after abort", "staging", stage)
}
