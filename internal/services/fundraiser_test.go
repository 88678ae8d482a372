package services

import (
	"testing"
	"time"

	"rallyround/internal/events"
	"rallyround/internal/models"

	"github.com/stretchr/testify/assert"
)

type recordingEnqueuer struct {
	ids chan string
}

func (r *recordingEnqueuer) EnqueueFundraiserRecompute(fundraiserID string) error {
	r.ids <- fundraiserID
	return nil
}

func TestDonationQueuesTotalsRefresh(t *testing.T) {
	enq := &recordingEnqueuer{ids: make(chan string, 1)}
	NewFundraiserService(nil, enq)

	events.Emit("donation.created", &models.Donation{FundraiserID: "fr-1", AmountCents: 500})

	select {
	case id := <-enq.ids:
		assert.Equal(t, "fr-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("donation never queued a totals refresh")
	}
}

func TestNonDonationPayloadIsIgnored(t *testing.T) {
	enq := &recordingEnqueuer{ids: make(chan string, 1)}
	NewFundraiserService(nil, enq)

	events.Emit("donation.created", "not a donation")

	select {
	case id := <-enq.ids:
		t.Fatalf("unexpected totals refresh for %q", id)
	case <-time.After(100 * time.Millisecond):
	}
}
