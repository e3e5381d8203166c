package main

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/isla-dev/isla/pkg/assets"
)

func publishCmd() *cobra.Command {
	var (
		dir    string
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish built island bundles to S3",
		Long: `Upload built island bundles to an S3 bucket under
content-hashed names and write the resulting manifest.json
alongside them.

Credentials come from the standard AWS environment variables
(AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN).

Examples:
  isla publish --bucket=my-assets --region=eu-west-1
  isla publish --dir=dist --bucket=my-assets --prefix=islands/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(dir, bucket, prefix, region)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "dist", "Directory of built bundles")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (required)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "islands/", "S3 key prefix")
	cmd.Flags().StringVarP(&region, "region", "r", "us-east-1", "AWS region")
	cmd.MarkFlagRequired("bucket")

	return cmd
}

func runPublish(dir, bucket, prefix, region string) error {
	if _, err := os.Stat(dir); err != nil {
		return err
	}

	client := s3.New(s3.Options{
		Region:      region,
		Credentials: envCredentials(),
	})
	pub := assets.NewPublisher(client, bucket, prefix)
	manifest := assets.NewManifest()

	info("publishing %s to s3://%s/%s", dir, bucket, prefix)
	if err := pub.PublishDir(context.Background(), manifest, dir); err != nil {
		return err
	}

	success("published %d bundles", manifest.Len())
	return nil
}

// envCredentials reads static credentials from the standard environment
// variables.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id := os.Getenv("AWS_ACCESS_KEY_ID")
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
}
