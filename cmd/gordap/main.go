package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jroosing/gordap/internal/client"
	"github.com/jroosing/gordap/internal/config"
	"github.com/jroosing/gordap/internal/logging"
	"github.com/jroosing/gordap/internal/query"
	"github.com/jroosing/gordap/internal/render"
	"github.com/jroosing/gordap/internal/server"
)

// batchLimit caps concurrent lookups when multiple queries are given.
const batchLimit = 4

func main() {
	var (
		serverURL  = flag.String("server", "", "Explicit server base URL (skips bootstrap discovery)")
		qtype      = flag.String("type", "", "Query type (domain, tld, ip, autnum, entity, nameserver, help, domain-search, ...); autodetected when empty")
		format     = flag.String("format", "text", "Output format: text, json, json-pretty")
		timeout    = flag.Duration("timeout", 0, "Per-query HTTP timeout (default from config)")
		noReferral = flag.Bool("no-referral", false, "Do not follow registrar referrals on domain queries")
		update     = flag.Bool("update", false, "Update bootstrap configuration and TLD data, then exit")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	level := "WARN"
	if *verbose {
		level = "DEBUG"
	}
	logger := logging.Configure(logging.Config{Level: level})

	if *update {
		result, err := config.Update(context.Background(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "update failed: %v\n", err)
			os.Exit(1)
		}
		if !result.Ok() {
			fmt.Fprintln(os.Stderr, "update completed with errors")
			os.Exit(1)
		}
		fmt.Println("configuration updated")
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: gordap [flags] QUERY [QUERY...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	stack, err := server.BuildStack(config.DefaultLoader(), logger, server.StackOptions{
		Timeout:         *timeout,
		DisableReferral: *noReferral,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gordap: %v\n", err)
		os.Exit(1)
	}

	var explicit *url.URL
	if *serverURL != "" {
		explicit, err = url.Parse(*serverURL)
		if err != nil || explicit.Host == "" {
			fmt.Fprintf(os.Stderr, "gordap: invalid -server URL %q\n", *serverURL)
			os.Exit(2)
		}
	}

	queries, err := buildQueries(args, *qtype, explicit, stack.TLDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gordap: %v\n", err)
		os.Exit(2)
	}

	results := make([]*client.Result, len(queries))
	errs := make([]error, len(queries))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(batchLimit)
	for i, q := range queries {
		g.Go(func() error {
			results[i], errs[i] = stack.Client.Lookup(ctx, q)
			// Per-query failures are reported individually; one bad
			// query must not cancel the rest of the batch.
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	for i, q := range queries {
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", q.Raw, errs[i])
			failed = true
			continue
		}
		if err := printResult(q, results[i], *format); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", q.Raw, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func buildQueries(args []string, qtype string, explicit *url.URL, tlds *config.TLDList) ([]query.Query, error) {
	var forced *query.Kind
	if qtype != "" {
		k, err := query.ParseKind(qtype)
		if err != nil {
			return nil, err
		}
		forced = &k
	}

	queries := make([]query.Query, 0, len(args))
	for _, raw := range args {
		var kind query.Kind
		if forced != nil {
			kind = *forced
		} else {
			kind = query.Detect(raw, tlds.Contains)
		}
		if kind == query.KindIP {
			norm, ok := query.NormalizeIP(raw)
			if !ok {
				return nil, fmt.Errorf("invalid IP query %q", raw)
			}
			raw = norm
		}
		q := query.New(kind, raw)
		if explicit != nil {
			q = q.WithServer(explicit)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func printResult(q query.Query, res *client.Result, format string) error {
	switch format {
	case "text":
		fmt.Printf("Query: %s (%s)\nServer: %s\n%s", q.Raw, q.Kind, res.RegistryURL, render.Text(res.Registry))
		if res.Registrar != nil {
			fmt.Printf("\nRegistrar data from %s:\n%s", res.RegistrarURL, render.Text(res.Registrar))
		}
		fmt.Println()
		return nil

	case "json", "json-pretty":
		out := jsonResult{
			Query:     q.Raw,
			Kind:      q.Kind.String(),
			ServerURL: res.RegistryURL.String(),
			Registry:  res.Registry,
		}
		if res.Registrar != nil {
			out.Registrar = res.Registrar
		}
		if res.RegistrarURL != nil {
			out.RegistrarURL = res.RegistrarURL.String()
		}
		enc := json.NewEncoder(os.Stdout)
		if format == "json-pretty" {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(out)

	default:
		return fmt.Errorf("unknown format %q (want text, json, or json-pretty)", format)
	}
}

type jsonResult struct {
	Query        string `json:"query"`
	Kind         string `json:"kind"`
	ServerURL    string `json:"server_url"`
	Registry     any    `json:"registry"`
	RegistrarURL string `json:"registrar_url,omitempty"`
	Registrar    any    `json:"registrar,omitempty"`
}
