package records

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Collection names the per-user record collections the web client keeps.
type Collection string

const (
	CollectionTodos           Collection = "todos"
	CollectionCourses         Collection = "courses"
	CollectionJournalEntries  Collection = "journalEntries"
	CollectionScheduledEvents Collection = "scheduledEvents"
	CollectionExpenses        Collection = "expenses"
	CollectionQuizHistory     Collection = "quizHistory"
)

var collections = []Collection{
	CollectionTodos,
	CollectionCourses,
	CollectionJournalEntries,
	CollectionScheduledEvents,
	CollectionExpenses,
	CollectionQuizHistory,
}

func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

func ParseCollection(s string) (Collection, bool) {
	for _, c := range collections {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Record is one user-owned document. Data is the client's JSON object, stored opaque.
type Record struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"column:user_id;not null;index:idx_record_owner,priority:1" json:"user_id"`
	Collection Collection     `gorm:"column:collection;not null;index:idx_record_owner,priority:2" json:"collection"`
	Data       datatypes.JSON `gorm:"column:data;not null" json:"data"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Record) TableName() string { return "records" }
