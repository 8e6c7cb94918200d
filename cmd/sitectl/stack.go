// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/baseball-dictionary/infra"
)

func runSynth(ctx context.Context, cmd SynthCmd, deps commandDeps) error {
	cfg := infra.StackConfig{
		Domain:       cmd.Domain,
		Subdomain:    cmd.Subdomain,
		Region:       cmd.Region,
		Account:      cmd.Account,
		HostedZoneID: cmd.HostedZoneID,
	}
	// Fail before touching AWS
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.HostedZoneID == "" && !cmd.NoLookup {
		clients, err := deps.awsClients(ctx, cmd.options())
		if err != nil {
			return err
		}
		id, err := infra.LookupHostedZone(ctx, clients.Route53, cfg.Domain)
		if err != nil {
			return err
		}
		cfg.HostedZoneID = id
	}

	tmpl, err := infra.Synth(cfg)
	if err != nil {
		return err
	}
	out, err := tmpl.YAML()
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	if cmd.Out == "" {
		_, err = deps.out.Write(out)
		return err
	}
	if err := os.WriteFile(cmd.Out, out, 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	_, _ = fmt.Fprintf(deps.out, "Wrote %s (%s)\n", cmd.Out, humanize.Bytes(uint64(len(out))))
	return nil
}

func runPublish(ctx context.Context, cmd PublishCmd, deps commandDeps) error {
	clients, err := deps.awsClients(ctx, cmd.options())
	if err != nil {
		return err
	}

	result, err := infra.Publish(ctx, clients.S3, cmd.Bucket, cmd.Dir)
	if err != nil {
		return fmt.Errorf("publish failed after %d files: %w", result.Files, err)
	}
	_, _ = fmt.Fprintf(deps.out, "Uploaded %d files (%s) to s3://%s\n",
		result.Files, humanize.Bytes(uint64(result.Bytes)), cmd.Bucket)
	return nil
}
