// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package infra describes and publishes the static-site hosting stack.

# Stack

Synth renders a CloudFormation template for the site:

  - Private S3 bucket (public access blocked, SSE-S3, retained on delete)
  - CloudFront origin access identity with read access to the bucket
  - DNS-validated ACM certificate for the subdomain
  - CloudFront distribution (HTTPS redirect, CachingOptimized, 403/404
    served as /index.html)
  - Route 53 alias record for the subdomain

	cfg := infra.DefaultConfig()
	cfg.HostedZoneID, err = infra.LookupHostedZone(ctx, clients.Route53, cfg.Domain)
	tmpl, err := infra.Synth(cfg)
	out, err := tmpl.YAML()

The stack must live in us-east-1 and the subdomain must sit under the
domain's hosted zone.

# Publishing

Publish uploads a built site directory to the bucket. HTML is sent with
Cache-Control: no-cache, everything else is cached for a day.
*/
package infra
