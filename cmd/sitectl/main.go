// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command sitectl manages the dictionary site: it renders and publishes the
// hosting stack, browses the catalog, and reviews submissions from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"

	"github.com/danielhkuo/baseball-dictionary/catalog"
	"github.com/danielhkuo/baseball-dictionary/infra"
	"github.com/danielhkuo/baseball-dictionary/repository"
)

type CLI struct {
	Synth   SynthCmd   `cmd:"" help:"Render the CloudFormation template for the site"`
	Publish PublishCmd `cmd:"" help:"Upload a built site directory to the site bucket"`
	Browse  BrowseCmd  `cmd:"" help:"Search the dictionary interactively"`
	Review  ReviewCmd  `cmd:"" help:"Approve or reject pending submissions"`
	HashKey HashKeyCmd `cmd:"" name:"hash-key" help:"Print a bcrypt hash to use as ADMIN_KEY_HASH"`
}

type AWSFlags struct {
	Region  string `name:"region" default:"us-east-1" env:"AWS_REGION" help:"AWS region"`
	Profile string `name:"profile" env:"AWS_PROFILE" help:"Shared config profile"`
}

func (f AWSFlags) options() infra.AWSOptions {
	return infra.AWSOptions{Region: f.Region, Profile: f.Profile}
}

type SynthCmd struct {
	AWSFlags     `embed:""`
	Domain       string `name:"domain" default:"caseyhunter.net" help:"Hosted zone domain"`
	Subdomain    string `name:"subdomain" default:"baseball.caseyhunter.net" help:"Site hostname"`
	Account      string `name:"account" env:"AWS_ACCOUNT_ID" help:"Account id used in the bucket name"`
	HostedZoneID string `name:"hosted-zone-id" help:"Skip the Route 53 lookup and use this zone"`
	NoLookup     bool   `name:"no-lookup" help:"Reference the zone by name instead of looking it up"`
	Out          string `name:"out" short:"o" help:"Write the template to a file instead of stdout"`
}

type PublishCmd struct {
	AWSFlags `embed:""`
	Bucket   string `name:"bucket" required:"" help:"Site bucket name"`
	Dir      string `name:"dir" required:"" type:"existingdir" help:"Built site directory"`
}

type RepoFlags struct {
	APIURL string `name:"api-url" env:"API_URL" help:"Dictionary API base URL"`
	Sample bool   `name:"sample" help:"Use the built-in sample data"`
}

type BrowseCmd struct {
	RepoFlags `embed:""`
	Category  string `name:"category" default:"all" help:"Initial category"`
}

type ReviewCmd struct {
	RepoFlags `embed:""`
	Key       string `name:"key" env:"ADMIN_API_KEY" required:"" help:"Admin API key"`
}

type HashKeyCmd struct {
	Key  string `arg:"" optional:"" help:"Key to hash (read from stdin when omitted)"`
	Cost int    `name:"cost" default:"10" help:"bcrypt cost"`
}

type kongExitCode int

type commandDeps struct {
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	awsClients func(ctx context.Context, opts infra.AWSOptions) (infra.Clients, error)
	newRepo    func(flags RepoFlags) (repository.Repository, error)
	debounce   time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], defaultDeps()))
}

func defaultDeps() commandDeps {
	return commandDeps{
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		awsClients: newAWSClients,
		newRepo:    newRepository,
		debounce:   catalog.DefaultDebounce,
	}
}

func newAWSClients(ctx context.Context, opts infra.AWSOptions) (infra.Clients, error) {
	cfg, err := infra.LoadAWSConfig(ctx, opts)
	if err != nil {
		return infra.Clients{}, err
	}
	return infra.NewClients(cfg), nil
}

func newRepository(flags RepoFlags) (repository.Repository, error) {
	if flags.Sample {
		return repository.NewSample(repository.DefaultLatency), nil
	}
	if flags.APIURL == "" {
		return nil, errors.New("--api-url is required unless --sample is set")
	}
	return repository.NewHTTP(flags.APIURL, nil), nil
}

func run(args []string, deps commandDeps) (exitCode int) {
	if deps.out == nil {
		deps.out = os.Stdout
	}
	if deps.errOut == nil {
		deps.errOut = os.Stderr
	}
	if deps.in == nil {
		deps.in = os.Stdin
	}
	if deps.awsClients == nil {
		deps.awsClients = newAWSClients
	}
	if deps.newRepo == nil {
		deps.newRepo = newRepository
	}

	cli := CLI{}
	parser, err := kong.New(
		&cli,
		kong.Name("sitectl"),
		kong.Description("Manage the Baseball Bathroom Dictionary site."),
		kong.Writers(deps.out, deps.errOut),
		kong.Exit(func(code int) {
			panic(kongExitCode(code))
		}),
	)
	if err != nil {
		_, _ = fmt.Fprintf(deps.errOut, "Error: initialize command parser: %v\n", err)
		return 1
	}
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		code, ok := recovered.(kongExitCode)
		if !ok {
			panic(recovered)
		}
		exitCode = int(code)
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(deps.errOut, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.errOut, "Hint: run `sitectl --help`.")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch kctx.Command() {
	case "synth":
		err = runSynth(ctx, cli.Synth, deps)
	case "publish":
		err = runPublish(ctx, cli.Publish, deps)
	case "browse":
		err = runBrowse(ctx, cli.Browse, deps)
	case "review":
		err = runReview(ctx, cli.Review, deps)
	case "hash-key", "hash-key <key>":
		err = runHashKey(cli.HashKey, deps)
	default:
		err = fmt.Errorf("unsupported command: %s", kctx.Command())
	}
	if err != nil {
		_, _ = fmt.Fprintf(deps.errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}
