// Package publish uploads the chart PNG artifacts to a GitHub repository
// via the contents API: read the existing blob SHA (when present), then
// create-or-update the file with a commit message.
package publish

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/go-github/v57/github"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"golang.org/x/oauth2"
)

// Service publishes files to the configured repository.
type Service struct {
	client *github.Client
	config *common.PublishConfig
	logger arbor.ILogger
}

// NewService creates a publish service. A missing token is fatal for the
// publish operation; callers decide whether publishing is part of the run.
func NewService(config *common.PublishConfig, logger arbor.ILogger) (*Service, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("github token is required (set GITHUB_TOKEN or publish.token)")
	}
	if config.Owner == "" || config.Repo == "" {
		return nil, fmt.Errorf("publish target repository is required (publish.owner/publish.repo)")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &Service{
		client: github.NewClient(tc),
		config: config,
		logger: logger,
	}, nil
}

// NewServiceWithClient creates a publish service around an existing client.
// Used by tests to point at a stub API server.
func NewServiceWithClient(client *github.Client, config *common.PublishConfig, logger arbor.ILogger) *Service {
	return &Service{
		client: client,
		config: config,
		logger: logger,
	}
}

// UploadFiles publishes each local file under its base name. A failure on
// one file is reported and the next file is still attempted; the returned
// error aggregates the failures.
func (s *Service) UploadFiles(ctx context.Context, localPaths ...string) error {
	var failures int
	for _, localPath := range localPaths {
		if err := s.UploadFile(ctx, filepath.Base(localPath), localPath); err != nil {
			s.logger.Error().Err(err).Str("file", localPath).Msg("Chart upload failed")
			failures++
			continue
		}
		s.logger.Info().Str("file", filepath.Base(localPath)).Msg("Chart uploaded")
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d uploads failed", failures, len(localPaths))
	}
	return nil
}

// UploadFile creates or updates one repository file with the local file's
// content. Overwriting requires the existing blob's SHA, fetched first.
func (s *Service) UploadFile(ctx context.Context, repoPath, localPath string) error {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", localPath, err)
	}

	sha, err := s.getFileSHA(ctx, repoPath)
	if err != nil {
		return err
	}

	options := &github.RepositoryContentFileOptions{
		Message: github.String(s.config.CommitMessage),
		Content: content,
	}

	if sha != "" {
		s.logger.Debug().Str("path", repoPath).Str("sha", sha).Msg("File exists, updating")
		options.SHA = github.String(sha)
		_, resp, err := s.client.Repositories.UpdateFile(ctx, s.config.Owner, s.config.Repo, repoPath, options)
		if err != nil {
			return uploadError("update", repoPath, resp, err)
		}
		return nil
	}

	s.logger.Debug().Str("path", repoPath).Msg("Creating new file")
	_, resp, err := s.client.Repositories.CreateFile(ctx, s.config.Owner, s.config.Repo, repoPath, options)
	if err != nil {
		return uploadError("create", repoPath, resp, err)
	}
	return nil
}

// getFileSHA fetches the blob SHA of an existing repository file. An empty
// SHA with no error means the file does not exist yet.
func (s *Service) getFileSHA(ctx context.Context, repoPath string) (string, error) {
	fileContent, _, resp, err := s.client.Repositories.GetContents(ctx, s.config.Owner, s.config.Repo, repoPath, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", uploadError("stat", repoPath, resp, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("repository path %s is a directory", repoPath)
	}
	return fileContent.GetSHA(), nil
}

func uploadError(op, repoPath string, resp *github.Response, err error) error {
	if resp != nil {
		return fmt.Errorf("github %s %s failed with status %d: %w", op, repoPath, resp.StatusCode, err)
	}
	return fmt.Errorf("github %s %s failed: %w", op, repoPath, err)
}
