package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/constants"
	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// SupportClient implements datahawk.SupportClient. The support service is
// pinned to v1 regardless of the configured API version.
type SupportClient struct {
	httpClient *http.Client
	base       string
}

// NewSupportClient creates a new support client.
func NewSupportClient(httpClient *http.Client) *SupportClient {
	return &SupportClient{
		httpClient: httpClient,
		base:       fmt.Sprintf("/v%d/support", constants.SupportAPIVersion),
	}
}

// CreateTicket implements datahawk.SupportClient.CreateTicket.
func (c *SupportClient) CreateTicket(ctx context.Context, request *datahawk.TicketCreateRequest) (*datahawk.SupportTicket, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/tickets", request)
	if err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	var ticket datahawk.SupportTicket

	err = json.Unmarshal(resp.Body, &ticket)
	if err != nil {
		return nil, fmt.Errorf("parsing ticket: %w", err)
	}

	return &ticket, nil
}

// GetTicket implements datahawk.SupportClient.GetTicket.
func (c *SupportClient) GetTicket(ctx context.Context, ticketID string) (*datahawk.SupportTicket, error) {
	path := c.base + "/tickets/" + ticketID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting ticket: %w", err)
	}

	var ticket datahawk.SupportTicket

	err = json.Unmarshal(resp.Body, &ticket)
	if err != nil {
		return nil, fmt.Errorf("parsing ticket: %w", err)
	}

	return &ticket, nil
}

// ListTickets implements datahawk.SupportClient.ListTickets.
func (c *SupportClient) ListTickets(ctx context.Context, query *datahawk.Query) (*datahawk.SupportTicketList, error) {
	resp, err := c.httpClient.Get(ctx, c.base+"/tickets", query)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	var list datahawk.SupportTicketList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing ticket list: %w", err)
	}

	return &list, nil
}

// AddComment implements datahawk.SupportClient.AddComment.
func (c *SupportClient) AddComment(ctx context.Context, ticketID string, request *datahawk.CommentCreateRequest) (*datahawk.TicketComment, error) {
	path := c.base + "/tickets/" + ticketID + "/comments"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	var comment datahawk.TicketComment

	err = json.Unmarshal(resp.Body, &comment)
	if err != nil {
		return nil, fmt.Errorf("parsing comment: %w", err)
	}

	return &comment, nil
}
