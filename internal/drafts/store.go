// Package drafts persists in-progress wizard forms to an embedded NATS
// JetStream event log. Every step advance appends a snapshot; abandoning a
// wizard loses nothing, and `propose --resume` restores the latest snapshot
// for a (DAO, flow) pair.
package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/daoterm/daoterm/internal/logger"
)

const streamName = "daoterm_drafts"

// Draft is one snapshot of a wizard form.
type Draft struct {
	DAO     string          `json:"dao"`
	Flow    string          `json:"flow"`
	Title   string          `json:"title"` // proposal name at snapshot time
	SavedAt time.Time       `json:"saved_at"`
	Form    json.RawMessage `json:"form"`
}

// Slug returns a subject-safe token derived from the draft title.
func (d Draft) Slug() string {
	s := slug.Make(d.Title)
	if s == "" {
		s = "untitled"
	}
	return s
}

// subjectFor returns the subject for a (dao, flow) pair.
// Example: "daoterm.draft.0xd40.transfer"
func subjectFor(dao, flow string) string {
	return fmt.Sprintf("daoterm.draft.%s.%s", dao, flow)
}

// SetupStream creates or updates the JetStream stream holding draft
// snapshots, with 30-day retention.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"daoterm.draft.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
}

// Store reads and writes draft snapshots.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a Store over an existing stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// Save appends a draft snapshot.
func (s *Store) Save(ctx context.Context, draft Draft) error {
	if draft.SavedAt.IsZero() {
		draft.SavedAt = time.Now()
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	subject := subjectFor(draft.DAO, draft.Flow)
	if _, err := s.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("publishing draft to %s: %w", subject, err)
	}

	logger.Debug("draft saved: dao=%s flow=%s slug=%s", draft.DAO, draft.Flow, draft.Slug())
	return nil
}

// Latest returns the most recent draft for a (dao, flow) pair, or nil when
// none exists.
func (s *Store) Latest(ctx context.Context, dao, flow string) (*Draft, error) {
	subject := subjectFor(dao, flow)

	cons, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverLastPolicy,
		FilterSubject: subject,
	})
	if err != nil {
		return nil, fmt.Errorf("creating draft consumer: %w", err)
	}

	batch, err := cons.Fetch(1, jetstream.FetchMaxWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("fetching latest draft: %w", err)
	}

	for msg := range batch.Messages() {
		var draft Draft
		if err := json.Unmarshal(msg.Data(), &draft); err != nil {
			_ = msg.Ack()
			return nil, fmt.Errorf("decoding draft: %w", err)
		}
		_ = msg.Ack()
		return &draft, nil
	}
	if err := batch.Error(); err != nil {
		return nil, fmt.Errorf("reading draft batch: %w", err)
	}

	return nil, nil
}
