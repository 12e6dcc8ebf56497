package services

import (
	"errors"
	"testing"
	"time"

	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
)

func TestValidateSessionInput(t *testing.T) {
	tests := []struct {
		name    string
		input   LogSessionInput
		wantErr bool
	}{
		{"minimal valid", LogSessionInput{PagesRead: 1}, false},
		{"page range valid", LogSessionInput{PagesRead: 20, StartPage: intPtr(100), EndPage: intPtr(120)}, false},
		{"zero pages read", LogSessionInput{PagesRead: 0}, true},
		{"negative pages read", LogSessionInput{PagesRead: -5}, true},
		{"end before start", LogSessionInput{PagesRead: 10, StartPage: intPtr(120), EndPage: intPtr(100)}, true},
		{"end equals start", LogSessionInput{PagesRead: 10, StartPage: intPtr(100), EndPage: intPtr(100)}, true},
		{"future date", LogSessionInput{PagesRead: 10, SessionDate: time.Now().Add(time.Hour)}, true},
		{"past date", LogSessionInput{PagesRead: 10, SessionDate: time.Now().Add(-time.Hour)}, false},
		{"negative time spent", LogSessionInput{PagesRead: 10, TimeSpentMinutes: intPtr(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSessionInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateSessionInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errs.ErrInvalidArgument) {
				t.Fatalf("error %v does not wrap ErrInvalidArgument", err)
			}
		})
	}
}
