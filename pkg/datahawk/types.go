package datahawk

import "time"

// Resource contains fields common to all API resources.
type Resource struct {
	ID        string    `json:"id"         yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ListMeta carries pagination metadata on list responses.
type ListMeta struct {
	Page       int `json:"page"        yaml:"page"`
	PerPage    int `json:"per_page"    yaml:"per_page"`
	TotalCount int `json:"total_count" yaml:"total_count"`
}

// Dataset represents an uploaded survey dataset.
type Dataset struct {
	Resource

	UUID        string   `json:"uuid"                  yaml:"uuid"`
	Name        string   `json:"name"                  yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string   `json:"status"                yaml:"status"`
	PhotoCount  int      `json:"photo_count"           yaml:"photo_count"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// DatasetList is a paginated page of datasets.
type DatasetList struct {
	Items []Dataset `json:"items" yaml:"items"`
	Meta  ListMeta  `json:"meta"  yaml:"meta"`
}

// DatasetCreateRequest creates a dataset. Nil optional fields are omitted
// from the request body entirely.
type DatasetCreateRequest struct {
	Name        string   `json:"name"                  yaml:"name"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// DatasetUpdateRequest updates a dataset.
type DatasetUpdateRequest struct {
	Name        *string  `json:"name,omitempty"        yaml:"name,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// ProcessRequest starts photogrammetry processing for a dataset.
type ProcessRequest struct {
	Pipeline   string  `json:"pipeline,omitempty"    yaml:"pipeline,omitempty"`
	Resolution *int    `json:"resolution,omitempty"  yaml:"resolution,omitempty"`
	WebhookURL *string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}

// ProcessingStatus reports the processing state of a dataset.
type ProcessingStatus struct {
	DatasetUUID string  `json:"dataset_uuid"     yaml:"dataset_uuid"`
	State       string  `json:"state"            yaml:"state"`
	Progress    float64 `json:"progress"         yaml:"progress"`
	JobID       string  `json:"job_id,omitempty" yaml:"job_id,omitempty"`
}

// Photo represents a single image within a dataset.
type Photo struct {
	Resource

	Filename  string   `json:"filename"            yaml:"filename"`
	SizeBytes int64    `json:"size_bytes"          yaml:"size_bytes"`
	Latitude  *float64 `json:"latitude,omitempty"  yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"  yaml:"altitude,omitempty"`
	TakenAt   *string  `json:"taken_at,omitempty"  yaml:"taken_at,omitempty"`
}

// PhotoList is a paginated page of photos.
type PhotoList struct {
	Items []Photo  `json:"items" yaml:"items"`
	Meta  ListMeta `json:"meta"  yaml:"meta"`
}

// PhotoAddRequest registers a photo with a dataset.
type PhotoAddRequest struct {
	Filename  string   `json:"filename"            yaml:"filename"`
	SizeBytes int64    `json:"size_bytes"          yaml:"size_bytes"`
	Checksum  *string  `json:"checksum,omitempty"  yaml:"checksum,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"  yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"  yaml:"altitude,omitempty"`
}

// PhotoUpdateRequest updates photo metadata.
type PhotoUpdateRequest struct {
	Filename *string  `json:"filename,omitempty"  yaml:"filename,omitempty"`
	Latitude *float64 `json:"latitude,omitempty"  yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

// DownloadURL is a short-lived signed URL for retrieving photo content.
type DownloadURL struct {
	URL       string    `json:"url"        yaml:"url"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
}

// GeoPoint is a single surveyed coordinate.
type GeoPoint struct {
	Latitude  float64  `json:"latitude"            yaml:"latitude"`
	Longitude float64  `json:"longitude"           yaml:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"  yaml:"altitude,omitempty"`
}

// Measurement represents a stored measurement over a dataset.
type Measurement struct {
	Resource

	DatasetUUID string     `json:"dataset_uuid"    yaml:"dataset_uuid"`
	Type        string     `json:"type"            yaml:"type"`
	Name        string     `json:"name,omitempty"  yaml:"name,omitempty"`
	Points      []GeoPoint `json:"points"          yaml:"points"`
	Value       float64    `json:"value"           yaml:"value"`
	Unit        string     `json:"unit"            yaml:"unit"`
}

// MeasurementList is a paginated page of measurements.
type MeasurementList struct {
	Items []Measurement `json:"items" yaml:"items"`
	Meta  ListMeta      `json:"meta"  yaml:"meta"`
}

// MeasurementCreateRequest stores a new measurement.
type MeasurementCreateRequest struct {
	DatasetUUID string     `json:"dataset_uuid"   yaml:"dataset_uuid"`
	Type        string     `json:"type"           yaml:"type"`
	Name        *string    `json:"name,omitempty" yaml:"name,omitempty"`
	Points      []GeoPoint `json:"points"         yaml:"points"`
}

// VolumeRequest computes cut/fill volume within a polygon.
type VolumeRequest struct {
	DatasetUUID string     `json:"dataset_uuid"             yaml:"dataset_uuid"`
	Polygon     []GeoPoint `json:"polygon"                  yaml:"polygon"`
	BasePlane   *string    `json:"base_plane,omitempty"     yaml:"base_plane,omitempty"`
}

// VolumeResult is the response to a volume calculation.
type VolumeResult struct {
	CutCubicMeters  float64 `json:"cut_cubic_meters"  yaml:"cut_cubic_meters"`
	FillCubicMeters float64 `json:"fill_cubic_meters" yaml:"fill_cubic_meters"`
	NetCubicMeters  float64 `json:"net_cubic_meters"  yaml:"net_cubic_meters"`
}

// ElevationRequest samples terrain elevation at the given points.
type ElevationRequest struct {
	DatasetUUID string     `json:"dataset_uuid" yaml:"dataset_uuid"`
	Points      []GeoPoint `json:"points"       yaml:"points"`
}

// ElevationResult carries sampled elevations, in request order.
type ElevationResult struct {
	Elevations []float64 `json:"elevations" yaml:"elevations"`
	Unit       string    `json:"unit"       yaml:"unit"`
}

// Export represents a requested artifact export (orthomosaic, point cloud,
// contour lines and so on).
type Export struct {
	Resource

	DatasetUUID string `json:"dataset_uuid"           yaml:"dataset_uuid"`
	Format      string `json:"format"                 yaml:"format"`
	State       string `json:"state"                  yaml:"state"`
	DownloadURL string `json:"download_url,omitempty" yaml:"download_url,omitempty"`
}

// ExportList is a paginated page of exports.
type ExportList struct {
	Items []Export `json:"items" yaml:"items"`
	Meta  ListMeta `json:"meta"  yaml:"meta"`
}

// ExportCreateRequest requests a new export.
type ExportCreateRequest struct {
	DatasetUUID string  `json:"dataset_uuid"         yaml:"dataset_uuid"`
	Format      string  `json:"format"               yaml:"format"`
	CRS         *string `json:"crs,omitempty"        yaml:"crs,omitempty"`
	Resolution  *int    `json:"resolution,omitempty" yaml:"resolution,omitempty"`
}

// Annotation represents a marker or note placed on a dataset.
type Annotation struct {
	Resource

	DatasetUUID string     `json:"dataset_uuid"   yaml:"dataset_uuid"`
	Kind        string     `json:"kind"           yaml:"kind"`
	Text        string     `json:"text,omitempty" yaml:"text,omitempty"`
	Geometry    []GeoPoint `json:"geometry"       yaml:"geometry"`
	Color       string     `json:"color,omitempty" yaml:"color,omitempty"`
}

// AnnotationList is a paginated page of annotations.
type AnnotationList struct {
	Items []Annotation `json:"items" yaml:"items"`
	Meta  ListMeta     `json:"meta"  yaml:"meta"`
}

// AnnotationCreateRequest places a new annotation.
type AnnotationCreateRequest struct {
	DatasetUUID string     `json:"dataset_uuid"    yaml:"dataset_uuid"`
	Kind        string     `json:"kind"            yaml:"kind"`
	Text        *string    `json:"text,omitempty"  yaml:"text,omitempty"`
	Geometry    []GeoPoint `json:"geometry"        yaml:"geometry"`
	Color       *string    `json:"color,omitempty" yaml:"color,omitempty"`
}

// AnnotationUpdateRequest edits an annotation.
type AnnotationUpdateRequest struct {
	Text  *string `json:"text,omitempty"  yaml:"text,omitempty"`
	Color *string `json:"color,omitempty" yaml:"color,omitempty"`
}

// JobError describes a failure recorded on a processing job.
type JobError struct {
	Code   string `json:"code"   yaml:"code"`
	Detail string `json:"detail" yaml:"detail"`
}

// ProcessingJob represents an asynchronous processing job.
type ProcessingJob struct {
	Resource

	DatasetUUID string     `json:"dataset_uuid"       yaml:"dataset_uuid"`
	Operation   string     `json:"operation"          yaml:"operation"`
	State       string     `json:"state"              yaml:"state"`
	Progress    float64    `json:"progress"           yaml:"progress"`
	Errors      []JobError `json:"errors,omitempty"   yaml:"errors,omitempty"`
}

// ProcessingJobList is a paginated page of processing jobs.
type ProcessingJobList struct {
	Items []ProcessingJob `json:"items" yaml:"items"`
	Meta  ListMeta        `json:"meta"  yaml:"meta"`
}

// SupportTicket represents a support request.
type SupportTicket struct {
	Resource

	Subject  string `json:"subject"            yaml:"subject"`
	Body     string `json:"body"               yaml:"body"`
	State    string `json:"state"              yaml:"state"`
	Severity string `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// SupportTicketList is a paginated page of support tickets.
type SupportTicketList struct {
	Items []SupportTicket `json:"items" yaml:"items"`
	Meta  ListMeta        `json:"meta"  yaml:"meta"`
}

// TicketCreateRequest opens a support ticket.
type TicketCreateRequest struct {
	Subject     string  `json:"subject"                yaml:"subject"`
	Body        string  `json:"body"                   yaml:"body"`
	Severity    *string `json:"severity,omitempty"     yaml:"severity,omitempty"`
	DatasetUUID *string `json:"dataset_uuid,omitempty" yaml:"dataset_uuid,omitempty"`
}

// TicketComment is a comment on a support ticket.
type TicketComment struct {
	Resource

	Body   string `json:"body"   yaml:"body"`
	Author string `json:"author" yaml:"author"`
}

// CommentCreateRequest adds a comment to a ticket.
type CommentCreateRequest struct {
	Body string `json:"body" yaml:"body"`
}

// ServiceStatus reports platform availability. The endpoint is public and
// never carries an Authorization header.
type ServiceStatus struct {
	Status     string            `json:"status"               yaml:"status"`
	Version    string            `json:"version"              yaml:"version"`
	Components map[string]string `json:"components,omitempty" yaml:"components,omitempty"`
}
