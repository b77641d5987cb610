package buoy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/models"
)

const stationListKey = "buoy-stations.json"

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StationListCacheProvider defines the interface for durable station list caching
type StationListCacheProvider interface {
	GetStations(ctx context.Context) ([]models.Station, error)
	SaveStations(ctx context.Context, stations []models.Station) error
}

// StationListCacheRecord is the cached station list with expiry metadata
type StationListCacheRecord struct {
	Stations    []models.Station `json:"stations"`
	LastUpdated int64            `json:"lastUpdated"`
	TTL         int64            `json:"ttl"`
}

// S3StationCache caches the buoy station directory in S3
type S3StationCache struct {
	client     S3Client
	bucketName string
	ttl        time.Duration
	now        func() time.Time
}

// NewS3StationCache creates an S3-backed station list cache against the
// default AWS config.
func NewS3StationCache(ctx context.Context, bucketName string, ttl time.Duration) (*S3StationCache, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3StationCache{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// GetStations retrieves the station list from S3 if present and unexpired.
// A missing object or expired record returns nil without error.
func (c *S3StationCache) GetStations(ctx context.Context) ([]models.Station, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(stationListKey),
	})
	if err != nil {
		// Object not present yet; treat as a cache miss.
		return nil, nil
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var record StationListCacheRecord
	if err := json.NewDecoder(result.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding station list record: %w", err)
	}

	if c.now().Unix() > record.TTL {
		log.Debug().Msg("Station directory cache expired")
		return nil, nil
	}

	return record.Stations, nil
}

// SaveStations writes the station list to S3 with a fresh TTL.
func (c *S3StationCache) SaveStations(ctx context.Context, stations []models.Station) error {
	if c.bucketName == "" {
		return fmt.Errorf("empty bucket name")
	}

	now := c.now().Unix()
	record := StationListCacheRecord{
		Stations:    stations,
		LastUpdated: now,
		TTL:         now + int64(c.ttl.Seconds()),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(record); err != nil {
		return fmt.Errorf("encoding station list record: %w", err)
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(stationListKey),
		Body:   bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("saving station list to S3: %w", err)
	}

	log.Debug().Int("station_count", len(stations)).Msg("Saved station directory to S3")
	return nil
}
