package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/growthdesk-backend/internal/data/repos"
	types "github.com/yungbote/growthdesk-backend/internal/domain"
	"github.com/yungbote/growthdesk-backend/internal/domain/records"
	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/ctxutil"
	"github.com/yungbote/growthdesk-backend/internal/platform/dbctx"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

const maxListLimit = 500

var (
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidRecord     = errors.New("record data must be a JSON object")
)

// RecordService stores the caller's productivity records. The caller is the
// user id carried in ctx by the auth middleware.
type RecordService interface {
	List(ctx context.Context, collection string, limit int) ([]*types.Record, error)
	Get(ctx context.Context, collection, id string) (*types.Record, error)
	Create(ctx context.Context, collection string, data json.RawMessage) (*types.Record, error)
	// Patch shallow-merges the top-level keys of patch into the stored object.
	Patch(ctx context.Context, collection, id string, patch json.RawMessage) (*types.Record, error)
	Delete(ctx context.Context, collection, id string) error
}

type recordService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.RecordRepo
	notifier RecordNotifier
}

func NewRecordService(db *gorm.DB, log *logger.Logger, repo repos.RecordRepo, notifier RecordNotifier) RecordService {
	return &recordService{
		db:       db,
		log:      log.With("service", "RecordService"),
		repo:     repo,
		notifier: notifier,
	}
}

func (s *recordService) List(ctx context.Context, collection string, limit int) (out []*types.Record, err error) {
	defer s.observe(collection, "list", &err)
	userID, coll, err := s.scope(ctx, collection)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	out, err = s.repo.List(dbctx.New(ctx), userID, coll, limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if out == nil {
		out = []*types.Record{}
	}
	return out, nil
}

func (s *recordService) Get(ctx context.Context, collection, id string) (rec *types.Record, err error) {
	defer s.observe(collection, "get", &err)
	userID, coll, err := s.scope(ctx, collection)
	if err != nil {
		return nil, err
	}
	rid, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	rec, err = s.repo.GetByID(dbctx.New(ctx), userID, coll, rid)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

func (s *recordService) Create(ctx context.Context, collection string, data json.RawMessage) (rec *types.Record, err error) {
	defer s.observe(collection, "create", &err)
	userID, coll, err := s.scope(ctx, collection)
	if err != nil {
		return nil, err
	}
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	rec = &types.Record{
		ID:         uuid.New(),
		UserID:     userID,
		Collection: coll,
		Data:       datatypes.JSON(raw),
	}
	if err := s.repo.Create(dbctx.New(ctx), rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	s.notifier.RecordCreated(ctx, rec)
	return rec, nil
}

func (s *recordService) Patch(ctx context.Context, collection, id string, patch json.RawMessage) (rec *types.Record, err error) {
	defer s.observe(collection, "patch", &err)
	userID, coll, err := s.scope(ctx, collection)
	if err != nil {
		return nil, err
	}
	rid, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	changes, err := decodeObject(patch)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := s.repo.GetByID(dbc, userID, coll, rid)
		if err != nil {
			return fmt.Errorf("get record: %w", err)
		}
		if existing == nil {
			return ErrRecordNotFound
		}
		current := map[string]any{}
		if len(existing.Data) > 0 {
			if err := json.Unmarshal(existing.Data, &current); err != nil {
				return fmt.Errorf("decode stored record: %w", err)
			}
		}
		for k, v := range changes {
			current[k] = v
		}
		raw, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		if _, err := s.repo.UpdateData(dbc, userID, coll, rid, datatypes.JSON(raw)); err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		existing.Data = datatypes.JSON(raw)
		existing.UpdatedAt = time.Now().UTC()
		rec = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.RecordUpdated(ctx, rec)
	return rec, nil
}

func (s *recordService) Delete(ctx context.Context, collection, id string) (err error) {
	defer s.observe(collection, "delete", &err)
	userID, coll, err := s.scope(ctx, collection)
	if err != nil {
		return err
	}
	rid, err := parseRecordID(id)
	if err != nil {
		return err
	}
	n, err := s.repo.Delete(dbctx.New(ctx), userID, coll, rid)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	s.notifier.RecordDeleted(ctx, userID, coll, rid.String())
	return nil
}

func collectionNames() string {
	all := records.Collections()
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func (s *recordService) scope(ctx context.Context, collection string) (string, types.Collection, error) {
	userID := ctxutil.UserID(ctx)
	if userID == "" {
		return "", "", ErrUnauthenticated
	}
	coll, ok := records.ParseCollection(collection)
	if !ok {
		return "", "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownCollection, collection, collectionNames())
	}
	return userID, coll, nil
}

func (s *recordService) observe(collection, op string, errp *error) {
	status := "ok"
	if errp != nil && *errp != nil {
		switch {
		case errors.Is(*errp, ErrRecordNotFound):
			status = "not_found"
		case errors.Is(*errp, ErrUnknownCollection), errors.Is(*errp, ErrInvalidRecord), errors.Is(*errp, ErrUnauthenticated):
			status = "rejected"
		default:
			status = "error"
			s.log.Error("Record operation failed", "collection", collection, "op", op, "error", *errp)
		}
	}
	if _, ok := records.ParseCollection(collection); !ok {
		collection = "unknown"
	}
	observability.Current().IncRecordOp(collection, op, status)
}

func parseRecordID(id string) (uuid.UUID, error) {
	rid, err := uuid.Parse(id)
	if err != nil || rid == uuid.Nil {
		return uuid.Nil, ErrRecordNotFound
	}
	return rid, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, ErrInvalidRecord
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return obj, nil
}
