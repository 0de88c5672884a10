package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"uscmenu-backend/lib/menu"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Config struct {
	Bucket string `json:"bucket"`
	Region string `json:"region"`
}

// S3 stores each date's document as a `menu-<date>.json` object, the
// layout the web front end reads directly.
type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("an s3 bucket was not specified")
	}
	awscfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws sdk config: %w", err)
	}
	return &S3{
		client: s3.NewFromConfig(awscfg),
		bucket: cfg.Bucket,
	}, nil
}

func objectKey(date string) string {
	return fmt.Sprintf("menu-%s.json", date)
}

var objectKeyPattern = regexp.MustCompile(`^menu-(\d{4}-\d{2}-\d{2})\.json$`)

func (s *S3) Put(ctx context.Context, date string, doc menu.DailyMenu) error {
	ctx, span := tracer.Start(ctx, "s3.Put")
	defer span.End()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding menu document: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(date)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("uploading menu document for %s: %w", date, err)
	}
	return nil
}

func (s *S3) Get(ctx context.Context, date string) (menu.DailyMenu, bool, error) {
	ctx, span := tracer.Start(ctx, "s3.Get")
	defer span.End()

	res, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(date)),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return menu.DailyMenu{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		return menu.DailyMenu{}, false, fmt.Errorf("downloading menu document for %s: %w", date, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return menu.DailyMenu{}, false, err
	}
	var doc menu.DailyMenu
	if err := json.Unmarshal(data, &doc); err != nil {
		return menu.DailyMenu{}, false, fmt.Errorf("decoding menu document for %s: %w", date, err)
	}
	return doc, true, nil
}

func (s *S3) List(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "s3.List")
	defer span.End()

	var dates []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String("menu-"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("listing menu documents: %w", err)
		}
		for _, obj := range page.Contents {
			match := objectKeyPattern.FindStringSubmatch(aws.ToString(obj.Key))
			if match == nil {
				continue
			}
			dates = append(dates, match[1])
		}
	}
	return dates, nil
}

func (s *S3) Delete(ctx context.Context, date string) error {
	ctx, span := tracer.Start(ctx, "s3.Delete")
	defer span.End()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(date)),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("deleting menu document for %s: %w", date, err)
	}
	return nil
}
