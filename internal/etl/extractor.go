package etl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/BartekS5/gamsync/pkg/logger"
	"github.com/BartekS5/gamsync/pkg/models"
	"github.com/BartekS5/gamsync/pkg/utils"
)

// ReportExtractor runs "gam report users" and redirects its stdout into
// the artifact file. Arguments are passed as a vector, never through a shell.
type ReportExtractor struct {
	Tool         models.ToolConfig
	ArtifactPath string
}

func NewReportExtractor(tool models.ToolConfig, artifactPath string) *ReportExtractor {
	return &ReportExtractor{Tool: tool, ArtifactPath: artifactPath}
}

// Args returns the tool arguments:
// report users [filter f1,f2] [parameters p1,p2].
func (e *ReportExtractor) Args() []string {
	args := []string{"report", "users"}
	if len(e.Tool.Filters) > 0 {
		args = append(args, "filter", strings.Join(e.Tool.Filters, ","))
	}
	if len(e.Tool.Mappings) > 0 {
		if params := e.Tool.Mappings.Parameters(); len(params) > 0 {
			args = append(args, "parameters", strings.Join(params, ","))
		}
	}
	return args
}

// waitDelay bounds how long Extract waits for the tool's stderr to close
// after the process is killed.
var waitDelay = 5 * time.Second

// Extract writes the report to a temporary file next to the artifact and
// renames it into place only after the tool exits cleanly, so a failed run
// leaves the previous report untouched.
func (e *ReportExtractor) Extract(ctx context.Context) (string, error) {
	if e.Tool.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Tool.Timeout)
		defer cancel()
	}

	dir, base := filepath.Split(e.ArtifactPath)
	if dir == "" {
		dir = "."
	}
	out, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: cannot create %s: %v", ErrExtraction, e.ArtifactPath, err)
	}
	tmpPath := out.Name()
	defer os.Remove(tmpPath)
	defer out.Close()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Tool.Path, e.Args()...)
	cmd.Stdout = out
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	logger.Info("Running GAM Report")
	logger.Debugf("exec %s %s", e.Tool.Path, strings.Join(e.Args(), " "))
	if err := cmd.Run(); err != nil {
		if msg := utils.Tail(stderr.String(), 512); msg != "" {
			return "", fmt.Errorf("%w: %s: %v: %s", ErrExtraction, e.Tool.Path, err, msg)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrExtraction, e.Tool.Path, err)
	}
	if err := out.Chmod(0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if err := out.Sync(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if err := os.Rename(tmpPath, e.ArtifactPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	logger.Info("GAM Report Complete")

	return e.ArtifactPath, nil
}

// ExistingReport is an Extractor that reuses an artifact from an earlier
// run instead of invoking the tool.
type ExistingReport string

func (p ExistingReport) Extract(ctx context.Context) (string, error) {
	if _, err := os.Stat(string(p)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	logger.Infof("Reusing existing report %s", string(p))
	return string(p), nil
}
