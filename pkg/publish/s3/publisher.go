package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/cost-guardian/dashboard/pkg/publish"
)

const contentType = "application/json"

type ObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher stores the snapshot as a single object. Revisions are ETags and
// writes are conditional (If-Match, or If-None-Match: * on create). The
// target branch has no meaning for S3 and is ignored.
type Publisher struct {
	client ObjectAPI
	bucket string
}

func NewPublisher(client ObjectAPI, bucket string) (*Publisher, error) {
	if client == nil {
		return nil, errors.New("s3 client is nil")
	}
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}
	return &Publisher{client: client, bucket: bucket}, nil
}

func NewPublisherFromConfig(cfg aws.Config, bucket string) (*Publisher, error) {
	return NewPublisher(s3.NewFromConfig(cfg), bucket)
}

func (p *Publisher) Revision(ctx context.Context, target publish.Target) (string, bool, error) {
	out, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(target.Path),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to head s3://%s/%s: %w", p.bucket, target.Path, err)
	}
	return aws.ToString(out.ETag), true, nil
}

func (p *Publisher) Write(
	ctx context.Context,
	target publish.Target,
	content []byte,
	message, revision string,
) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(target.Path),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"message": message},
	}
	if revision == "" {
		input.IfNoneMatch = aws.String("*")
	} else {
		input.IfMatch = aws.String(revision)
	}

	out, err := p.client.PutObject(ctx, input)
	if err != nil {
		if isConflict(err) {
			return "", fmt.Errorf("failed to put s3://%s/%s: %w", p.bucket, target.Path, publish.ErrConflict)
		}
		return "", fmt.Errorf("failed to put s3://%s/%s: %w", p.bucket, target.Path, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("bucket", p.bucket).
		Str("key", target.Path).
		Msg("snapshot uploaded")

	return aws.ToString(out.ETag), nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey")
}

func isConflict(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}
