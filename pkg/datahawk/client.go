package datahawk

import (
	"context"
	"time"
)

// Config represents client configuration for building a datahawk.Client.
//
// # Base URL selection
//
// Origin wins when both Origin and Domain are set; otherwise the base URL is
// built as "https://" + Domain. The token endpoint has the same duality:
// AuthOrigin wins, otherwise "https://" + Tenant, and when neither is set the
// token endpoint falls back to the API base itself.
//
// # Authentication precedence
//
//  1. Token: if set, it is used directly as a bearer token. Its freshness is
//     still re-derived from the token's own exp claim on every call, and when
//     Key/Secret are also configured an expired token is replaced via the
//     client_credentials grant.
//  2. Key/Secret: uses the OAuth2 client_credentials grant against
//     {auth-base}/v1/oauth/token with the configured Audience.
//  3. No credentials: requests are sent without an Authorization header.
//     Endpoints that require one will reject the call themselves.
type Config struct {
	// Env is an optional environment tag (dev/stage/prod). When set it is
	// injected as the x-dh-env header on every request.
	Env string

	// Origin is the full base URL of the API (e.g. "https://api.datahawk.io").
	// Takes precedence over Domain.
	Origin string
	// Domain is the API host; the base URL becomes "https://" + Domain.
	Domain string

	// AuthOrigin is the full base URL of the token service. Takes precedence
	// over Tenant.
	AuthOrigin string
	// Tenant is the token service host; the token base becomes
	// "https://" + Tenant. When neither AuthOrigin nor Tenant is set, tokens
	// are requested from the API base.
	Tenant string

	// Key and Secret are the OAuth2 client credentials.
	Key    string
	Secret string
	// Audience is the OAuth2 audience claim sent with the grant.
	Audience string
	// Token is an optional pre-supplied bearer token that bypasses
	// credential-based acquisition while it remains unexpired.
	Token string

	// APIVersion is the integer path-version segment. Defaults to 2.
	APIVersion int

	// RetryMax is the maximum number of transport-level retries for transient
	// failures (429 and 5xx). If 0 a sensible default is used.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose request/response tracing when a Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the transport.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache optionally enables read-through caching of GET responses.
	// Token state is never cached here; it lives in memory only.
	Cache *CacheConfig
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// DatasetsClient manages survey datasets.
type DatasetsClient interface {
	Create(ctx context.Context, request *DatasetCreateRequest) (*Dataset, error)
	Get(ctx context.Context, uuid string) (*Dataset, error)
	List(ctx context.Context, query *Query) (*DatasetList, error)
	Update(ctx context.Context, uuid string, request *DatasetUpdateRequest) (*Dataset, error)
	Delete(ctx context.Context, uuid string) error
	Process(ctx context.Context, uuid string, request *ProcessRequest) (*ProcessingJob, error)
	GetProcessingStatus(ctx context.Context, uuid string) (*ProcessingStatus, error)
}

// PhotosClient manages photos within a dataset.
type PhotosClient interface {
	List(ctx context.Context, datasetUUID string, query *Query) (*PhotoList, error)
	Get(ctx context.Context, datasetUUID, photoID string) (*Photo, error)
	Add(ctx context.Context, datasetUUID string, request *PhotoAddRequest) (*Photo, error)
	Update(ctx context.Context, datasetUUID, photoID string, request *PhotoUpdateRequest) (*Photo, error)
	Delete(ctx context.Context, datasetUUID, photoID string) error
	GetDownloadURL(ctx context.Context, datasetUUID, photoID string) (*DownloadURL, error)
}

// MeasurementsClient manages measurements and on-demand calculations.
type MeasurementsClient interface {
	Create(ctx context.Context, request *MeasurementCreateRequest) (*Measurement, error)
	Get(ctx context.Context, measurementID string) (*Measurement, error)
	List(ctx context.Context, query *Query) (*MeasurementList, error)
	Delete(ctx context.Context, measurementID string) error
	CalculateVolume(ctx context.Context, request *VolumeRequest) (*VolumeResult, error)
	CalculateElevation(ctx context.Context, request *ElevationRequest) (*ElevationResult, error)
}

// ExportsClient manages artifact exports.
type ExportsClient interface {
	Create(ctx context.Context, request *ExportCreateRequest) (*Export, error)
	Get(ctx context.Context, exportID string) (*Export, error)
	List(ctx context.Context, query *Query) (*ExportList, error)
	Cancel(ctx context.Context, exportID string) (*Export, error)
}

// AnnotationsClient manages dataset annotations.
type AnnotationsClient interface {
	Create(ctx context.Context, request *AnnotationCreateRequest) (*Annotation, error)
	Get(ctx context.Context, annotationID string) (*Annotation, error)
	List(ctx context.Context, query *Query) (*AnnotationList, error)
	Update(ctx context.Context, annotationID string, request *AnnotationUpdateRequest) (*Annotation, error)
	Delete(ctx context.Context, annotationID string) error
}

// ProcessingClient inspects and controls asynchronous processing jobs.
type ProcessingClient interface {
	GetJob(ctx context.Context, jobID string) (*ProcessingJob, error)
	ListJobs(ctx context.Context, query *Query) (*ProcessingJobList, error)
	CancelJob(ctx context.Context, jobID string) (*ProcessingJob, error)
	PollUntilComplete(ctx context.Context, jobID string) (*ProcessingJob, error)
}

// SupportClient manages support tickets.
type SupportClient interface {
	CreateTicket(ctx context.Context, request *TicketCreateRequest) (*SupportTicket, error)
	GetTicket(ctx context.Context, ticketID string) (*SupportTicket, error)
	ListTickets(ctx context.Context, query *Query) (*SupportTicketList, error)
	AddComment(ctx context.Context, ticketID string, request *CommentCreateRequest) (*TicketComment, error)
}

// Client is the full DataHawk API surface.
type Client interface {
	Datasets() DatasetsClient
	Photos() PhotosClient
	Measurements() MeasurementsClient
	Exports() ExportsClient
	Annotations() AnnotationsClient
	Processing() ProcessingClient
	Support() SupportClient

	// GetServiceStatus reads the public status endpoint. No Authorization
	// header is ever attached, even when a valid token is held.
	GetServiceStatus(ctx context.Context) (*ServiceStatus, error)
}
