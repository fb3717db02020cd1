package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/datahawk-io/datahawk-go/internal/constants"
	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// ProcessingClient implements datahawk.ProcessingClient.
type ProcessingClient struct {
	httpClient   *http.Client
	base         string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewProcessingClient creates a new processing client.
func NewProcessingClient(httpClient *http.Client, base string) *ProcessingClient {
	return &ProcessingClient{
		httpClient:   httpClient,
		base:         base,
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultJobPollTimeout,
	}
}

// GetJob implements datahawk.ProcessingClient.GetJob.
func (c *ProcessingClient) GetJob(ctx context.Context, jobID string) (*datahawk.ProcessingJob, error) {
	path := c.base + "/processing/jobs/" + jobID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	var job datahawk.ProcessingJob

	err = json.Unmarshal(resp.Body, &job)
	if err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}

	return &job, nil
}

// ListJobs implements datahawk.ProcessingClient.ListJobs.
func (c *ProcessingClient) ListJobs(ctx context.Context, query *datahawk.Query) (*datahawk.ProcessingJobList, error) {
	resp, err := c.httpClient.Get(ctx, c.base+"/processing/jobs", query)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	var list datahawk.ProcessingJobList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing job list: %w", err)
	}

	return &list, nil
}

// CancelJob implements datahawk.ProcessingClient.CancelJob.
func (c *ProcessingClient) CancelJob(ctx context.Context, jobID string) (*datahawk.ProcessingJob, error) {
	path := c.base + "/processing/jobs/" + jobID + "/cancel"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("canceling job: %w", err)
	}

	var job datahawk.ProcessingJob

	err = json.Unmarshal(resp.Body, &job)
	if err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}

	return &job, nil
}

// PollUntilComplete implements datahawk.ProcessingClient.PollUntilComplete.
// It polls the job until it reaches a terminal state (COMPLETE or FAILED).
func (c *ProcessingClient) PollUntilComplete(ctx context.Context, jobID string) (*datahawk.ProcessingJob, error) {
	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// First check immediately
	job, err := c.GetJob(pollCtx, jobID)
	if err != nil {
		return nil, fmt.Errorf("getting job status: %w", err)
	}

	if isJobComplete(job) {
		return finishedJob(job)
	}

	for {
		select {
		case <-pollCtx.Done():
			// Return the last known state on timeout
			return job, fmt.Errorf("timeout waiting for job to complete: %w", pollCtx.Err())
		case <-ticker.C:
			job, err = c.GetJob(pollCtx, jobID)
			if err != nil {
				return nil, fmt.Errorf("getting job status: %w", err)
			}

			if isJobComplete(job) {
				return finishedJob(job)
			}
		}
	}
}

// isJobComplete checks if a job is in a terminal state.
func isJobComplete(job *datahawk.ProcessingJob) bool {
	return job.State == constants.JobStateComplete || job.State == constants.JobStateFailed
}

func finishedJob(job *datahawk.ProcessingJob) (*datahawk.ProcessingJob, error) {
	if job.State == constants.JobStateFailed {
		return job, fmt.Errorf("%w: %s", datahawk.ErrJobFailed, formatJobErrors(job))
	}

	return job, nil
}

// formatJobErrors formats job errors for display.
func formatJobErrors(job *datahawk.ProcessingJob) string {
	if len(job.Errors) == 0 {
		return "no error details available"
	}

	if len(job.Errors) == 1 {
		return job.Errors[0].Detail
	}

	result := "multiple errors:"
	for i, jobErr := range job.Errors {
		result += fmt.Sprintf("\n  %d. %s", i+1, jobErr.Detail)
	}

	return result
}
