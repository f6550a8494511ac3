package commands

import (
	"errors"
	"testing"

	"grove/internal/adapters/session"
	"grove/internal/application"
	"grove/internal/domain"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref    string
		want   int
		wantOK bool
	}{
		{"#2", 2, true},
		{"2", 2, true},
		{" #10 ", 10, true},
		{"#x", 0, false},
		{"1f3e6c2a-uuid", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := ParseRef(tt.ref)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseRef(%q) = %d, %v; want %d, %v", tt.ref, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveItemRef(t *testing.T) {
	sessions := session.NewMemory()
	RememberListing(sessions, "alice", []domain.Item{{ID: "id-1"}, {ID: "id-2"}})

	tests := []struct {
		name    string
		user    string
		ref     string
		want    string
		wantErr error
	}{
		{"hash ref", "alice", "#2", "id-2", nil},
		{"bare number", "alice", "1", "id-1", nil},
		{"raw id", "alice", "id-9", "id-9", nil},
		{"out of range", "alice", "#3", "", application.ErrUnknownReference},
		{"other user", "bob", "#1", "", application.ErrUnknownReference},
		{"malformed", "alice", "#two", "", application.ErrUnknownReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveItemRef(sessions, tt.user, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveItemRef_Empty(t *testing.T) {
	_, err := ResolveItemRef(session.NewMemory(), "alice", " ")
	var ve *application.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected validation error, got %v", err)
	}
}
