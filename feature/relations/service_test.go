package relations

import (
	"context"
	"errors"
	"testing"

	"content-relations/core/notification"
	"content-relations/core/reconcile"
	"content-relations/feature/relations/editors"
	"content-relations/feature/relations/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestService_Reconcile(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.db, editors.Default(), reconcile.Config{}, zap.NewNop())

	results, err := svc.Reconcile(context.Background(), notification.Notification{
		Kind:  notification.KindDocument,
		Event: notification.EventSaved,
		IDs:   []int{f.page.ID, f.other.ID},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, f.page.ID, results[0].ParentID)
	assert.Equal(t, 2, results[0].Inserted)
	assert.True(t, results[1].Cleared, "other has no references")
	assert.Equal(t, int64(2), f.relationCount(t, f.page.ID))

	// Idempotent on repeat.
	results, err = svc.Reconcile(context.Background(), notification.Notification{
		Kind: notification.KindDocument, Event: notification.EventPublished, IDs: []int{f.page.ID},
	})
	require.NoError(t, err)
	assert.Zero(t, results[0].Inserted)
	assert.Equal(t, 2, results[0].Unchanged)
}

func TestService_MissingEntitiesAreLogged(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(f.db, editors.Default(), reconcile.Config{}, zap.New(core))

	// The image is media, so asking for it as a document finds nothing.
	results, err := svc.Reconcile(context.Background(), notification.Notification{
		Kind: notification.KindDocument, Event: notification.EventSaved, IDs: []int{f.image.ID, 9999},
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	entries := logs.FilterMessage("Entities not found, skipping").All()
	require.Len(t, entries, 1)
}

func TestService_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)

	// Drop the relation table so the insert fails after the reads succeed.
	require.NoError(t, f.db.Migrator().DropTable(&models.Relation{}))

	svc := NewService(f.db, editors.Default(), reconcile.Config{}, nil)
	_, err := svc.Reconcile(context.Background(), notification.Notification{
		Kind: notification.KindDocument, Event: notification.EventSaved, IDs: []int{f.page.ID},
	})
	assert.ErrorContains(t, err, "failed to reconcile document.saved(1)")
}

func TestService_NoDatabase(t *testing.T) {
	svc := NewService(nil, editors.Default(), reconcile.Config{}, nil)

	_, err := svc.Reconcile(context.Background(), notification.Notification{Kind: notification.KindMedia, Event: notification.EventSaved, IDs: []int{1}})
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = svc.Rebuild(context.Background(), notification.KindMedia, 10)
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = svc.GetRelations(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestService_Subscribe(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.db, editors.Default(), reconcile.Config{TypeCacheTTLSeconds: 60}, nil)
	bus := notification.NewBus()
	svc.Subscribe(bus)

	for _, kind := range notification.Kinds {
		for _, event := range notification.Events {
			err := bus.Publish(context.Background(), notification.Notification{Kind: kind, Event: event, IDs: []int{9999}})
			assert.False(t, errors.Is(err, notification.ErrNoHandler), "%s.%s", kind, event)
			assert.NoError(t, err)
		}
	}

	require.NoError(t, bus.Publish(context.Background(), notification.Notification{
		Kind: notification.KindDocument, Event: notification.EventPublished, IDs: []int{f.page.ID},
	}))
	assert.Equal(t, int64(2), f.relationCount(t, f.page.ID))
}

func TestService_Rebuild(t *testing.T) {
	f := newFixture(t)
	third := f.node(t, "document", "third")
	f.property(t, third.ID, "hero", "Umbraco.MediaPicker3", f.udi(f.image, reconcile.EntityTypeMedia))

	svc := NewService(f.db, editors.Default(), reconcile.Config{}, nil)
	summary, err := svc.Rebuild(context.Background(), notification.KindDocument, 2)
	require.NoError(t, err)

	assert.Equal(t, "document", summary.Kind)
	assert.Equal(t, 3, summary.Entities)
	assert.Equal(t, 2, summary.Batches)
	assert.Equal(t, 3, summary.Inserted)
	assert.Equal(t, int64(1), f.relationCount(t, third.ID))

	// Nothing changes on a second pass.
	summary, err = svc.Rebuild(context.Background(), notification.KindDocument, 0)
	require.NoError(t, err)
	assert.Zero(t, summary.Inserted)
	assert.Zero(t, summary.Deleted)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Rebuild(canceled, notification.KindDocument, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_GetRelations(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.db, editors.Default(), reconcile.Config{}, nil)
	_, err := svc.Reconcile(context.Background(), notification.Notification{
		Kind: notification.KindDocument, Event: notification.EventSaved, IDs: []int{f.page.ID},
	})
	require.NoError(t, err)

	all, err := svc.GetRelations(context.Background(), f.page.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	media, err := svc.GetRelations(context.Background(), f.page.ID, []string{models.RelatedMediaAlias})
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, f.image.ID, media[0].ChildID)
	assert.Equal(t, "image", media[0].ChildName)
}
