// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/catalog"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/moderation"
)

// browser re-renders the catalog as queries and categories change
type browser struct {
	mu       sync.Mutex
	out      io.Writer
	terms    []models.Term
	category string
	query    string
}

func (b *browser) search(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = query
	b.renderLocked()
}

func (b *browser) selectCategory(category string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.category = category
	b.renderLocked()
}

func (b *browser) renderLocked() {
	view := catalog.Filter(b.terms, b.category, b.query)
	if view.NoResults {
		fmt.Fprintln(b.out, catalog.NoResultsMessage)
		return
	}
	for _, g := range view.Groups {
		fmt.Fprintf(b.out, "== %s ==\n", g.Category)
		for _, t := range g.Terms {
			fmt.Fprintf(b.out, "  %s: %s\n", t.Term, t.Analogy)
		}
	}
	fmt.Fprintf(b.out, "(%d terms)\n", view.Count)
}

// runBrowse reads one query per line. ":<category>" switches category,
// ":all" returns to the grouped view and ":q" quits.
func runBrowse(ctx context.Context, cmd BrowseCmd, deps commandDeps) error {
	repo, err := deps.newRepo(cmd.RepoFlags)
	if err != nil {
		return err
	}
	terms, err := repo.Terms(ctx)
	if err != nil {
		return fmt.Errorf("load terms: %w", err)
	}

	b := &browser{out: deps.out, terms: terms, category: cmd.Category}
	b.selectCategory(cmd.Category)

	d := catalog.NewDebouncer(deps.debounce, b.search)
	defer d.Stop()

	scanner := bufio.NewScanner(deps.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ":") {
			d.Trigger(line)
			continue
		}

		switch arg := strings.TrimSpace(strings.TrimPrefix(line, ":")); {
		case arg == "q":
			d.Flush()
			return nil
		case arg == models.CategoryAll || models.IsKnownCategory(arg):
			d.Flush()
			b.selectCategory(arg)
		default:
			fmt.Fprintf(deps.errOut, "Unknown category: %s\n", arg)
		}
	}
	d.Flush()
	return scanner.Err()
}

// lineReader reads answers for the review prompts
type lineReader struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func (r *lineReader) ask(prompt string) (string, bool) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

func (r *lineReader) confirm(message string) bool {
	answer, ok := r.ask(message + " [y/N]: ")
	answer = strings.ToLower(answer)
	return ok && (answer == "y" || answer == "yes")
}

// prompt treats end of input as cancel; an empty line is an empty reason
func (r *lineReader) prompt(message string) (string, bool) {
	return r.ask(message + " ")
}

func runReview(ctx context.Context, cmd ReviewCmd, deps commandDeps) error {
	repo, err := deps.newRepo(cmd.RepoFlags)
	if err != nil {
		return err
	}

	c := moderation.NewController(repo, moderation.NewMemoryStore(), "sitectl")
	if err := c.Login(ctx, cmd.Key); err != nil {
		fmt.Fprintln(deps.errOut, moderation.LoginFailedMessage)
		return err
	}

	view := c.Snapshot().View
	switch view.Status {
	case moderation.ViewEmpty:
		fmt.Fprintln(deps.out, moderation.EmptyMessage)
		return nil
	case moderation.ViewError:
		return errors.New(view.Message)
	}

	r := &lineReader{out: deps.out, scanner: bufio.NewScanner(deps.in)}
	for i, sub := range view.Submissions {
		fmt.Fprintf(deps.out, "\n[%d/%d] %s (%s)\n", i+1, len(view.Submissions), sub.Term, sub.Category)
		fmt.Fprintf(deps.out, "  %q\n", sub.Analogy)
		fmt.Fprintf(deps.out, "  By: %s, %s\n", sub.SubmittedBy, humanize.Time(sub.SubmittedDate))
		if sub.HasEmail() {
			fmt.Fprintf(deps.out, "  Email: %s\n", *sub.Email)
		}

		choice, ok := r.ask("[a]pprove, [r]eject, [s]kip, [q]uit: ")
		if !ok {
			return nil
		}

		var actionErr error
		switch strings.ToLower(choice) {
		case "a", "approve":
			actionErr = c.Approve(ctx, sub.ID, r.confirm)
		case "r", "reject":
			actionErr = c.Reject(ctx, sub.ID, r.prompt)
		case "q", "quit":
			return nil
		default:
			continue
		}

		switch {
		case actionErr == nil:
			fmt.Fprintln(deps.out, "Done.")
		case errors.Is(actionErr, moderation.ErrCancelled):
			fmt.Fprintln(deps.out, "Cancelled.")
		default:
			fmt.Fprintln(deps.errOut, c.Snapshot().Alert)
			c.DismissAlert()
		}
	}
	return nil
}

func runHashKey(cmd HashKeyCmd, deps commandDeps) error {
	key := cmd.Key
	if key == "" {
		scanner := bufio.NewScanner(deps.in)
		if scanner.Scan() {
			key = strings.TrimSpace(scanner.Text())
		}
	}
	hash, err := auth.HashAdminKey(key, cmd.Cost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(deps.out, hash)
	return err
}
