package uploads

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"blog-webclient/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// File is a user-selected upload: the original filename plus raw bytes.
type File struct {
	Name string
	Data []byte
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}

	now = time.Now
)

type Service struct {
	client     *s3.Client
	publicBase string
}

func NewService(ctx context.Context, cfg config.Config) (*Service, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	publicBase := cfg.S3PublicBaseURL
	if publicBase == "" {
		publicBase = cfg.S3Endpoint
	}

	return &Service{
		client:     client,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload stores the file under a timestamp-prefixed key so repeated uploads of
// the same filename cannot collide, and returns its public URL.
func (s *Service) Upload(ctx context.Context, bucket string, file File) (string, error) {
	key := objectKey(file.Name)

	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(http.DetectContentType(file.Data)),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBase, bucket, key), nil
}

func objectKey(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%d_%s", now().UnixMilli(), name)
}
