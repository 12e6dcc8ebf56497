package domain

import (
	"github.com/yungbote/bookkeeper-backend/internal/domain/reading"
)

type Book = reading.Book
type Journey = reading.Journey
type JourneyWithCounts = reading.JourneyWithCounts
type ReadingSession = reading.ReadingSession
type ReadingThought = reading.ReadingThought
type QuickNote = reading.QuickNote
type BookReview = reading.BookReview

type JourneyStatus = reading.JourneyStatus
type Visibility = reading.Visibility
type Recommendation = reading.Recommendation

const (
	JourneyStatusActive    = reading.JourneyStatusActive
	JourneyStatusCompleted = reading.JourneyStatusCompleted
	JourneyStatusAbandoned = reading.JourneyStatusAbandoned
	JourneyStatusArchived  = reading.JourneyStatusArchived

	VisibilityPublic      = reading.VisibilityPublic
	VisibilityConnections = reading.VisibilityConnections
	VisibilityPrivate     = reading.VisibilityPrivate

	RecommendYes   = reading.RecommendYes
	RecommendNo    = reading.RecommendNo
	RecommendMaybe = reading.RecommendMaybe
)
