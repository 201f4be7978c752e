// Package analyzer runs the external diary analyzer as a child process.
//
// The analyzer receives the entries as a JSON argument and prints one JSON
// object on stdout. It is invoked as
//
//	<command...> --entries <json> --mode <cbt|mbt> --provider <gemini|anthropic>
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"mindcare-be/internal/pkg/logger"
)

type Entry struct {
	EntryID   string `json:"entryId"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	EntryDate string `json:"entryDate"`
}

type Request struct {
	Entries  []Entry
	Mode     string
	Provider string
}

type Output struct {
	RiskLevel string
	// Payload is the analyzer's stdout, kept verbatim.
	Payload json.RawMessage
}

type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Output, error)
}

type ProcessAnalyzer struct {
	command []string
	workDir string
	logger  logger.ILogger
}

// Ensure ProcessAnalyzer implements Analyzer
var _ Analyzer = &ProcessAnalyzer{}

func NewProcessAnalyzer(command []string, workDir string, log logger.ILogger) (*ProcessAnalyzer, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, fmt.Errorf("analyzer command is required")
	}
	return &ProcessAnalyzer{command: command, workDir: workDir, logger: log}, nil
}

func (a *ProcessAnalyzer) Analyze(ctx context.Context, req Request) (*Output, error) {
	entriesJSON, err := json.Marshal(req.Entries)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}

	args := append([]string{}, a.command[1:]...)
	args = append(args,
		"--entries", string(entriesJSON),
		"--mode", req.Mode,
		"--provider", req.Provider,
	)

	cmd := exec.CommandContext(ctx, a.command[0], args...)
	cmd.Dir = a.workDir
	cmd.Env = append(os.Environ(), "PYTHONUNBUFFERED=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if stderr.Len() > 0 {
		a.logger.Debug("ANALYSIS", "Analyzer stderr", map[string]interface{}{
			"stderr": truncate(stderr.String(), 4000),
		})
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			a.logger.Error("ANALYSIS", "Analyzer exited with failure", map[string]interface{}{
				"exit_code": exitErr.ExitCode(),
				"duration":  duration.String(),
				"stderr":    truncate(stderr.String(), 4000),
			})
			return nil, fmt.Errorf("analyzer exited with code %d: %s", exitErr.ExitCode(), firstLine(stderr.String()))
		}
		a.logger.Error("ANALYSIS", "Failed to start analyzer", map[string]interface{}{"error": runErr.Error()})
		return nil, fmt.Errorf("failed to start analyzer: %w", runErr)
	}

	out, err := parseOutput(stdout.Bytes())
	if err != nil {
		a.logger.Error("ANALYSIS", "Analyzer output rejected", map[string]interface{}{
			"error":  err.Error(),
			"stdout": truncate(stdout.String(), 2000),
		})
		return nil, err
	}

	a.logger.Info("ANALYSIS", "Analyzer completed", map[string]interface{}{
		"mode":       req.Mode,
		"provider":   req.Provider,
		"entries":    len(req.Entries),
		"risk_level": out.RiskLevel,
		"duration":   duration.String(),
	})
	return out, nil
}

// parseOutput accepts a JSON object with a string risk_level. An object
// carrying a non-empty "error" is the analyzer reporting its own failure.
func parseOutput(stdout []byte) (*Output, error) {
	trimmed := bytes.TrimSpace(stdout)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}

	if raw, ok := fields["error"]; ok {
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" {
			return nil, fmt.Errorf("analyzer reported error: %s", msg)
		}
	}

	raw, ok := fields["risk_level"]
	if !ok {
		return nil, fmt.Errorf("analysis result has no risk_level")
	}
	var risk string
	if err := json.Unmarshal(raw, &risk); err != nil {
		return nil, fmt.Errorf("analysis result risk_level is not a string")
	}

	return &Output{RiskLevel: risk, Payload: json.RawMessage(trimmed)}, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return truncate(s, 300)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
