// Command rcvtab runs a ranked-choice tabulation from a rules file and
// a ballot file, and writes the round-by-round result.
//
// It plays the entrypoint role the teacher's internal/vote/run.go
// plays for the vote service (wire configuration, build collaborators,
// run, report errors), but as a one-shot CLI rather than a long-lived
// http server: alecthomas/kong parses flags instead of run.go's
// environment-variable table, since none of the retrieved example
// repos shows kong actually being used despite it sitting in the
// teacher's own go.mod as a direct dependency.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/openslides/rcvtab/internal/config"
	"github.com/openslides/rcvtab/internal/ingest"
	csvingest "github.com/openslides/rcvtab/internal/ingest/csv"
	jsoningest "github.com/openslides/rcvtab/internal/ingest/json"
	"github.com/openslides/rcvtab/internal/log"
	"github.com/openslides/rcvtab/internal/report"
	"github.com/openslides/rcvtab/internal/store/postgres"
	"github.com/openslides/rcvtab/internal/store/redis"
	"github.com/openslides/rcvtab/rcv"
)

type cli struct {
	Rules   string `help:"Path to the YAML rules file." required:"" type:"existingfile"`
	Ballots string `help:"Path to a ballot file (.csv or .json)." required:"" type:"existingfile"`

	Format string `help:"Ballot file format." enum:"csv,json" default:"csv"`

	Tiebreak string  `help:"Override the configured tiebreak mode." enum:",use_candidate_order,random"`
	Seed     *uint32 `help:"Override the random tiebreak seed."`
	Batch    bool    `help:"Override the configured elimination algorithm to batch."`

	ElectionID string `help:"Identifier used to persist this run's result." default:"default"`
	Postgres   string `help:"Postgres connection string. Persists the result if set."`
	Redis      string `help:"Redis address. Caches and reuses identical runs if set."`

	Out      string `help:"Path to write the JSON summary to." default:"-"`
	HumanLog string `help:"Path to write the human-readable round transcript to."`

	Verbose string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("rcvtab"),
		kong.Description("Tabulate a ranked-choice election."),
		kong.UsageOnError(),
	)

	if err := c.run(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func (c *cli) run() error {
	if err := log.SetLevel(c.Verbose); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	ctx := context.Background()

	file, err := config.Load(c.Rules)
	if err != nil {
		return err
	}

	overrides := config.Overrides{
		TiebreakMode: c.Tiebreak,
		RandomSeed:   c.Seed,
	}
	if c.Batch {
		overrides.EliminationAlgorithm = "batch"
	}
	merged, err := config.Merge(file, overrides)
	if err != nil {
		return err
	}

	rules, err := config.ToRules(merged)
	if err != nil {
		return err
	}
	candidates := config.Candidates(merged)

	ballots, err := readBallots(c.Ballots, c.Format)
	if err != nil {
		return err
	}

	var cache *redis.Cache
	var digest string
	if c.Redis != "" {
		cache = redis.New(c.Redis, time.Hour)
		defer cache.Close()

		digest, err = redis.Digest(rules, ballots)
		if err != nil {
			return err
		}
		if cached, ok, err := cache.Get(ctx, digest); err != nil {
			log.Warn("reading result cache: %v", err)
		} else if ok {
			log.Info("reusing cached result for election %q", c.ElectionID)
			reg, err := registryFor(candidates, cached)
			if err != nil {
				return err
			}
			return c.writeOutputs(cached, reg)
		}
	}

	builder := rcv.NewBuilder(rules).WithBallots(ballots)
	if len(candidates) > 0 {
		builder = builder.WithCandidates(candidates)
	}

	result, err := builder.Run()
	if err != nil {
		return fmt.Errorf("tabulating election: %w", err)
	}

	for _, round := range result.Rounds {
		var eliminated []string
		for _, row := range round.Results {
			if row.Status == rcv.Eliminated {
				eliminated = append(eliminated, row.Name)
			}
		}
		log.Round(round.Round, round.Threshold, eliminated)
	}

	reg, err := registryFor(candidates, result)
	if err != nil {
		return err
	}

	if cache != nil {
		if err := cache.Set(ctx, digest, result); err != nil {
			log.Warn("writing result cache: %v", err)
		}
	}

	if c.Postgres != "" {
		if err := persist(ctx, c.Postgres, c.ElectionID, result); err != nil {
			return err
		}
	}

	return c.writeOutputs(result, reg)
}

// registryFor builds the registry used to render a result: the
// explicit candidate list if one was configured, or else the set of
// names the result itself mentions (the same inference Run applies
// internally when no candidate list is given).
func registryFor(candidates []rcv.Candidate, result rcv.VotingResult) (*rcv.Registry, error) {
	if len(candidates) == 0 {
		candidates = inferredCandidates(result)
	}
	reg, err := rcv.NewRegistry(candidates)
	if err != nil {
		return nil, fmt.Errorf("building candidate registry: %w", err)
	}
	return reg, nil
}

func inferredCandidates(result rcv.VotingResult) []rcv.Candidate {
	var out []rcv.Candidate
	seen := make(map[string]bool)
	for _, round := range result.Rounds {
		for _, row := range round.Results {
			if !seen[row.Name] {
				seen[row.Name] = true
				out = append(out, rcv.Candidate{Name: row.Name})
			}
		}
	}
	return out
}

var readers = map[string]ingest.Reader{
	"csv":  ingest.ReaderFunc(csvingest.Read),
	"json": ingest.ReaderFunc(jsoningest.Read),
}

func readBallots(path, format string) ([]rcv.RawBallot, error) {
	reader, ok := readers[format]
	if !ok {
		return nil, fmt.Errorf("unknown ballot format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ballot file: %w", err)
	}
	defer f.Close()

	return reader.Read(f)
}

func persist(ctx context.Context, addr, electionID string, result rcv.VotingResult) error {
	backend, err := postgres.New(ctx, addr)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer backend.Close()

	backend.Wait(ctx)
	if err := backend.Migrate(ctx); err != nil {
		return err
	}
	if err := backend.Save(ctx, electionID, result); err != nil {
		return err
	}
	return nil
}

func (c *cli) writeOutputs(result rcv.VotingResult, reg *rcv.Registry) error {
	out := os.Stdout
	if c.Out != "-" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteJSON(out, result, reg); err != nil {
		return fmt.Errorf("writing json summary: %w", err)
	}

	if c.HumanLog != "" {
		f, err := os.Create(c.HumanLog)
		if err != nil {
			return fmt.Errorf("creating human log file: %w", err)
		}
		defer f.Close()
		if err := report.WriteHuman(f, result, reg); err != nil {
			return fmt.Errorf("writing human log: %w", err)
		}
	}
	return nil
}
