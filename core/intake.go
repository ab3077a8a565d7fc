package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artpipe/assetgate/schema"
)

// RunIntake performs filesystem-level validation before any scene data is
// parsed: format, existence and size. It assigns the asset ID and returns
// the metadata used by every later stage.
//
// The stage short-circuits on the first hard failure; a category size limit
// violation is a WARNING only, the hard limit is a FAIL.
func RunIntake(cfg schema.IntakeConfig) (schema.StageResult, schema.AssetMetadata) {
	now := time.Now().UTC()
	meta := schema.AssetMetadata{
		AssetID:             uuid.NewString(),
		Source:              cfg.Source,
		Category:            cfg.Category,
		Submitter:           cfg.Submitter,
		SubmissionDate:      now.Format("2006-01-02"),
		ProcessingTimestamp: now.Format(time.RFC3339),
	}

	var checks []schema.CheckResult
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))

	if _, ok := schema.AcceptedExtensions[ext]; !ok {
		shown := ext
		if shown == "" {
			shown = "(none)"
		}
		checks = append(checks, schema.CheckResult{
			Name:          schema.CheckIntakeFormat,
			Status:        schema.CheckFail,
			MeasuredValue: shown,
			Threshold:     acceptedExtensionList(),
			Message:       fmt.Sprintf("Unsupported format '%s'. Accepted: %v", shown, acceptedExtensionList()),
		})
		return intakeStage(schema.StageFail, checks), meta
	}
	checks = append(checks, schema.CheckResult{
		Name:          schema.CheckIntakeFormat,
		Status:        schema.CheckPass,
		MeasuredValue: ext,
		Threshold:     acceptedExtensionList(),
		Message:       "Format accepted",
	})

	info, err := os.Stat(cfg.FilePath)
	if err != nil {
		checks = append(checks, schema.CheckResult{
			Name:          schema.CheckIntakeExists,
			Status:        schema.CheckFail,
			MeasuredValue: cfg.FilePath,
			Threshold:     nil,
			Message:       fmt.Sprintf("File not found: %s", cfg.FilePath),
		})
		return intakeStage(schema.StageFail, checks), meta
	}
	checks = append(checks, schema.CheckResult{
		Name:          schema.CheckIntakeExists,
		Status:        schema.CheckPass,
		MeasuredValue: cfg.FilePath,
		Threshold:     nil,
		Message:       "File found",
	})

	fileSize := info.Size()
	categoryLimit := cfg.SizeLimit()

	if fileSize > cfg.HardMaxBytes {
		checks = append(checks, schema.CheckResult{
			Name:          schema.CheckIntakeFileSize,
			Status:        schema.CheckFail,
			MeasuredValue: fileSize,
			Threshold:     cfg.HardMaxBytes,
			Message:       fmt.Sprintf("File size %d B exceeds hard limit %d B", fileSize, cfg.HardMaxBytes),
		})
		return intakeStage(schema.StageFail, checks), meta
	}

	if categoryLimit > 0 && fileSize > categoryLimit {
		checks = append(checks, schema.CheckResult{
			Name:          schema.CheckIntakeFileSize,
			Status:        schema.CheckWarning,
			MeasuredValue: fileSize,
			Threshold:     categoryLimit,
			Message: fmt.Sprintf("File size %d B exceeds category limit %d B for '%s'",
				fileSize, categoryLimit, cfg.Category),
		})
	} else {
		threshold := categoryLimit
		if threshold == 0 {
			threshold = cfg.HardMaxBytes
		}
		checks = append(checks, schema.CheckResult{
			Name:          schema.CheckIntakeFileSize,
			Status:        schema.CheckPass,
			MeasuredValue: fileSize,
			Threshold:     threshold,
			Message:       "File size within limits",
		})
	}

	return intakeStage(schema.StagePass, checks), meta
}

func intakeStage(status schema.StageStatus, checks []schema.CheckResult) schema.StageResult {
	return schema.StageResult{Name: schema.StageIntake, Status: status, Checks: checks}
}

func acceptedExtensionList() []string {
	exts := make([]string, 0, len(schema.AcceptedExtensions))
	for ext := range schema.AcceptedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
