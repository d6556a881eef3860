package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"

	"github.com/openslides/rcvtab/internal/store/postgres"
	"github.com/openslides/rcvtab/rcv"
)

func startPostgres(t *testing.T) (string, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "13",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=password",
			"POSTGRES_DB=database",
		},
	})
	if err != nil {
		t.Fatalf("could not start postgres container: %s", err)
	}

	return resource.GetPort("5432/tcp"), func() {
		if err := pool.Purge(resource); err != nil {
			t.Fatalf("could not purge postgres container: %s", err)
		}
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skip postgres test")
	}

	ctx := context.Background()
	port, closeFn := startPostgres(t)
	defer closeFn()

	addr := fmt.Sprintf(`user=postgres password='password' host=localhost port=%s dbname=database`, port)
	b, err := postgres.New(ctx, addr)
	if err != nil {
		t.Fatalf("creating postgres backend: %v", err)
	}
	defer b.Close()

	b.Wait(ctx)
	if err := b.Migrate(ctx); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	result := rcv.VotingResult{
		Winners:   []string{"A"},
		Threshold: 4,
		Rounds: []rcv.RoundStatistics{
			{Round: 1, Threshold: 4, Results: []rcv.CandidateRoundResult{
				{CandidateID: 0, Name: "A", Count: 6, Status: rcv.Elected},
			}},
		},
	}

	if err := b.Save(ctx, "election-1", result); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := b.Load(ctx, "election-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Winners) != 1 || got.Winners[0] != "A" {
		t.Errorf("expected winner A, got %v", got.Winners)
	}
	if got.Threshold != 4 {
		t.Errorf("expected threshold 4, got %d", got.Threshold)
	}

	if _, err := b.Load(ctx, "does-not-exist"); err == nil {
		t.Error("expected an error loading an unknown election id")
	}
}
