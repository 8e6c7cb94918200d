// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrZoneNotFound = errors.New("hosted zone not found")

// Route53API is the part of the Route 53 client used here.
type Route53API interface {
	ListHostedZonesByName(ctx context.Context, in *route53.ListHostedZonesByNameInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error)
}

// S3API is the part of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AWSOptions selects credentials. Empty fields fall back to the default
// credential chain.
type AWSOptions struct {
	Region    string
	Profile   string
	AccessKey string
	SecretKey string
}

type Clients struct {
	Route53 Route53API
	S3      S3API
}

func LoadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	region := opts.Region
	if region == "" {
		region = RequiredRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func NewClients(cfg aws.Config) Clients {
	return Clients{
		Route53: route53.NewFromConfig(cfg),
		S3:      s3.NewFromConfig(cfg),
	}
}

// LookupHostedZone returns the id of the public hosted zone named domain,
// without the "/hostedzone/" prefix.
func LookupHostedZone(ctx context.Context, api Route53API, domain string) (string, error) {
	name := strings.TrimSuffix(strings.ToLower(domain), ".") + "."

	out, err := api.ListHostedZonesByName(ctx, &route53.ListHostedZonesByNameInput{
		DNSName:  aws.String(name),
		MaxItems: aws.Int32(10),
	})
	if err != nil {
		return "", fmt.Errorf("list hosted zones: %w", err)
	}

	for _, zone := range out.HostedZones {
		if !strings.EqualFold(aws.ToString(zone.Name), name) {
			continue
		}
		if zone.Config != nil && zone.Config.PrivateZone {
			continue
		}
		return strings.TrimPrefix(aws.ToString(zone.Id), "/hostedzone/"), nil
	}
	return "", fmt.Errorf("%w: %s", ErrZoneNotFound, domain)
}
