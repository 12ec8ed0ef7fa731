package utils

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig loads the default credential chain for region.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		region = "ap-northeast-1"
	}
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}
