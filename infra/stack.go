// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package infra

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDomain    = "caseyhunter.net"
	DefaultSubdomain = "baseball.caseyhunter.net"
	// RequiredRegion is where CloudFront certificates must live
	RequiredRegion = "us-east-1"
	StackName      = "BaseballFrontendStack"

	// Managed CloudFront cache policy "CachingOptimized"
	cachingOptimizedPolicyID = "658327ea-f89d-4fab-a63d-7e88639e58f6"
	// Hosted zone id of every CloudFront distribution alias target
	cloudFrontZoneID = "Z2FDTNDATAQYW2"
	// errorPageTTL is the caching TTL of the SPA fallback, in seconds
	errorPageTTL = 300
)

var (
	ErrWrongRegion        = errors.New("stack must be deployed in " + RequiredRegion)
	ErrSubdomainNotInZone = errors.New("subdomain is not under domain")
)

// StackConfig names the site. HostedZoneID is the lookup result for Domain;
// when empty the template references the zone by name.
type StackConfig struct {
	Domain       string
	Subdomain    string
	Region       string
	Account      string
	HostedZoneID string
}

func DefaultConfig() StackConfig {
	return StackConfig{
		Domain:    DefaultDomain,
		Subdomain: DefaultSubdomain,
		Region:    RequiredRegion,
	}
}

func (c StackConfig) Validate() error {
	if c.Region != RequiredRegion {
		return fmt.Errorf("%w: got %q", ErrWrongRegion, c.Region)
	}
	domain := strings.TrimSuffix(strings.ToLower(c.Domain), ".")
	host := strings.TrimSuffix(strings.ToLower(c.Subdomain), ".")
	if domain == "" || host == "" {
		return errors.New("domain and subdomain are required")
	}
	if host != domain && !strings.HasSuffix(host, "."+domain) {
		return fmt.Errorf("%w: %s is not under %s", ErrSubdomainNotInZone, c.Subdomain, c.Domain)
	}
	return nil
}

// BucketName returns the site bucket name, or "" when the account is not
// known until deploy time.
func (c StackConfig) BucketName() string {
	if c.Account == "" {
		return ""
	}
	return "baseball-bathroom-" + c.Account
}

// Template is a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string              `yaml:"AWSTemplateFormatVersion"`
	Description              string              `yaml:"Description"`
	Resources                map[string]Resource `yaml:"Resources"`
	Outputs                  map[string]Output   `yaml:"Outputs"`
}

type Resource struct {
	Type                string         `yaml:"Type"`
	DeletionPolicy      string         `yaml:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string         `yaml:"UpdateReplacePolicy,omitempty"`
	Properties          map[string]any `yaml:"Properties"`
}

type Output struct {
	Description string  `yaml:"Description"`
	Value       any     `yaml:"Value"`
	Export      *Export `yaml:"Export,omitempty"`
}

type Export struct {
	Name string `yaml:"Name"`
}

func ref(name string) map[string]any {
	return map[string]any{"Ref": name}
}

func getAtt(resource, attr string) map[string]any {
	return map[string]any{"Fn::GetAtt": []string{resource, attr}}
}

func sub(s string) map[string]any {
	return map[string]any{"Fn::Sub": s}
}

// Synth builds the static-site stack: a private bucket behind CloudFront with
// an origin access identity, a DNS-validated certificate and an alias record.
func Synth(cfg StackConfig) (*Template, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var bucketName any = sub("baseball-bathroom-${AWS::AccountId}")
	if name := cfg.BucketName(); name != "" {
		bucketName = name
	}

	zone := map[string]any{"HostedZoneName": strings.TrimSuffix(cfg.Domain, ".") + "."}
	if cfg.HostedZoneID != "" {
		zone = map[string]any{"HostedZoneId": cfg.HostedZoneID}
	}

	validation := map[string]any{"DomainName": cfg.Subdomain}
	if cfg.HostedZoneID != "" {
		validation["HostedZoneId"] = cfg.HostedZoneID
	}

	errorResponses := make([]map[string]any, 0, 2)
	for _, code := range []int{404, 403} {
		errorResponses = append(errorResponses, map[string]any{
			"ErrorCode":          code,
			"ResponseCode":       200,
			"ResponsePagePath":   "/index.html",
			"ErrorCachingMinTTL": errorPageTTL,
		})
	}

	record := map[string]any{
		"Name": cfg.Subdomain + ".",
		"Type": "A",
		"AliasTarget": map[string]any{
			"DNSName":      getAtt("Distribution", "DomainName"),
			"HostedZoneId": cloudFrontZoneID,
		},
	}
	for k, v := range zone {
		record[k] = v
	}

	t := &Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              "Baseball Bathroom Dictionary - Frontend Infrastructure",
		Resources: map[string]Resource{
			"WebsiteBucket": {
				Type:                "AWS::S3::Bucket",
				DeletionPolicy:      "Retain",
				UpdateReplacePolicy: "Retain",
				Properties: map[string]any{
					"BucketName": bucketName,
					"PublicAccessBlockConfiguration": map[string]any{
						"BlockPublicAcls":       true,
						"BlockPublicPolicy":     true,
						"IgnorePublicAcls":      true,
						"RestrictPublicBuckets": true,
					},
					"BucketEncryption": map[string]any{
						"ServerSideEncryptionConfiguration": []any{
							map[string]any{
								"ServerSideEncryptionByDefault": map[string]any{"SSEAlgorithm": "AES256"},
							},
						},
					},
				},
			},
			"WebsiteOAI": {
				Type: "AWS::CloudFront::CloudFrontOriginAccessIdentity",
				Properties: map[string]any{
					"CloudFrontOriginAccessIdentityConfig": map[string]any{
						"Comment": "OAI for Baseball Bathroom Dictionary",
					},
				},
			},
			"WebsiteBucketPolicy": {
				Type: "AWS::S3::BucketPolicy",
				Properties: map[string]any{
					"Bucket": ref("WebsiteBucket"),
					"PolicyDocument": map[string]any{
						"Version": "2012-10-17",
						"Statement": []any{
							map[string]any{
								"Effect":    "Allow",
								"Principal": map[string]any{"CanonicalUser": getAtt("WebsiteOAI", "S3CanonicalUserId")},
								"Action":    []string{"s3:GetObject*", "s3:GetBucket*", "s3:List*"},
								"Resource": []any{
									getAtt("WebsiteBucket", "Arn"),
									sub("${WebsiteBucket.Arn}/*"),
								},
							},
						},
					},
				},
			},
			"Certificate": {
				Type: "AWS::CertificateManager::Certificate",
				Properties: map[string]any{
					"DomainName":              cfg.Subdomain,
					"ValidationMethod":        "DNS",
					"DomainValidationOptions": []any{validation},
				},
			},
			"Distribution": {
				Type: "AWS::CloudFront::Distribution",
				Properties: map[string]any{
					"DistributionConfig": map[string]any{
						"Enabled":           true,
						"Comment":           "Baseball Bathroom Dictionary CDN",
						"Aliases":           []string{cfg.Subdomain},
						"DefaultRootObject": "index.html",
						"PriceClass":        "PriceClass_100",
						"HttpVersion":       "http2",
						"Origins": []any{
							map[string]any{
								"Id":         "WebsiteOrigin",
								"DomainName": getAtt("WebsiteBucket", "RegionalDomainName"),
								"S3OriginConfig": map[string]any{
									"OriginAccessIdentity": sub("origin-access-identity/cloudfront/${WebsiteOAI}"),
								},
							},
						},
						"DefaultCacheBehavior": map[string]any{
							"TargetOriginId":       "WebsiteOrigin",
							"ViewerProtocolPolicy": "redirect-to-https",
							"AllowedMethods":       []string{"GET", "HEAD", "OPTIONS"},
							"CachedMethods":        []string{"GET", "HEAD"},
							"CachePolicyId":        cachingOptimizedPolicyID,
							"Compress":             true,
						},
						"CustomErrorResponses": errorResponses,
						"ViewerCertificate": map[string]any{
							"AcmCertificateArn":      ref("Certificate"),
							"SslSupportMethod":       "sni-only",
							"MinimumProtocolVersion": "TLSv1.2_2021",
						},
					},
				},
			},
			"AliasRecord": {
				Type:       "AWS::Route53::RecordSet",
				Properties: record,
			},
		},
		Outputs: map[string]Output{
			"BucketName": {
				Description: "S3 Bucket Name",
				Value:       ref("WebsiteBucket"),
				Export:      &Export{Name: "BaseballBucketName"},
			},
			"DistributionId": {
				Description: "CloudFront Distribution ID",
				Value:       ref("Distribution"),
				Export:      &Export{Name: "BaseballDistributionId"},
			},
			"DistributionDomain": {
				Description: "CloudFront Distribution Domain",
				Value:       getAtt("Distribution", "DomainName"),
			},
			"WebsiteUrl": {
				Description: "Website URL",
				Value:       "https://" + cfg.Subdomain,
			},
		},
	}
	return t, nil
}

// YAML renders the template with two-space indentation.
func (t *Template) YAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(t); err != nil {
		_ = encoder.Close()
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
