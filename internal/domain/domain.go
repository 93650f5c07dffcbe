package domain

import "github.com/yungbote/growthdesk-backend/internal/domain/records"

type Record = records.Record
type Collection = records.Collection

const (
	CollectionTodos           = records.CollectionTodos
	CollectionCourses         = records.CollectionCourses
	CollectionJournalEntries  = records.CollectionJournalEntries
	CollectionScheduledEvents = records.CollectionScheduledEvents
	CollectionExpenses        = records.CollectionExpenses
	CollectionQuizHistory     = records.CollectionQuizHistory
)
