package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/service"
)

var errUnsafeUserID = errors.New("unsafe user id")

// fileSink writes each report as <user>-<YYYY-MM>.json and .txt under dir.
type fileSink struct {
	dir string
}

var _ service.ReportSink = (*fileSink)(nil)

func newFileSink(dir string) (*fileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	return &fileSink{dir: dir}, nil
}

func (s *fileSink) Deliver(ctx context.Context, report *service.MonthlyReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkFileComponent(report.UserID); err != nil {
		return err
	}
	base := filepath.Join(s.dir, fmt.Sprintf("%s-%s", report.UserID, report.Month))

	data, err := marshalReport(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".json", data, 0o644); err != nil {
		return fmt.Errorf("writing report json: %w", err)
	}

	text := formatter.FormatReportText(report, report.Profile.Language)
	if err := os.WriteFile(base+".txt", []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing report text: %w", err)
	}
	return nil
}

// checkFileComponent rejects user IDs that would escape the output directory
// when used as part of a file name.
func checkFileComponent(userID string) error {
	if userID == "" || userID == "." || strings.Contains(userID, "..") ||
		strings.ContainsAny(userID, `/\`) {
		return fmt.Errorf("user id %q is not usable as a file name: %w", userID, errUnsafeUserID)
	}
	return nil
}

// marshalReport encodes a report with its breakdown rounded for display.
func marshalReport(report *service.MonthlyReport) ([]byte, error) {
	rounded := *report
	rounded.Breakdown = report.Breakdown.Rounded()
	data, err := json.MarshalIndent(rounded, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report %s/%s: %w", report.UserID, report.Month, err)
	}
	return append(data, '\n'), nil
}
