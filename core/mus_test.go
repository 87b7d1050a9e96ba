package core

import (
	"testing"
	"time"
)

func TestMessageMUSRoundTrip(t *testing.T) {
	original := Message{
		Id:        42,
		Role:      RoleAssistant,
		Content:   "The speakers were Dr. A and Dr. B.",
		Timestamp: time.Date(2025, 10, 14, 18, 30, 0, 123000, time.UTC),
	}

	buf := make([]byte, MessageMUS.Size(original))
	n := MessageMUS.Marshal(original, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(buf))
	}

	decoded, n, err := MessageMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, want %d", n, len(buf))
	}

	if decoded.Id != original.Id {
		t.Errorf("Id = %d, want %d", decoded.Id, original.Id)
	}
	if decoded.Role != original.Role {
		t.Errorf("Role = %d, want %d", decoded.Role, original.Role)
	}
	if decoded.Content != original.Content {
		t.Errorf("Content = %q, want %q", decoded.Content, original.Content)
	}
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, original.Timestamp)
	}
}

func TestMessageMUSSkip(t *testing.T) {
	msg := Message{Id: 7, Role: RoleUser, Content: "how many robotics events?", Timestamp: time.Now().UTC()}

	buf := make([]byte, MessageMUS.Size(msg))
	MessageMUS.Marshal(msg, buf)

	n, err := MessageMUS.Skip(buf)
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if n != len(buf) {
		t.Errorf("Skip consumed %d bytes, want %d", n, len(buf))
	}
}

func TestMessageMUSUnmarshalTruncated(t *testing.T) {
	msg := Message{Id: 7, Role: RoleUser, Content: "truncate me", Timestamp: time.Now().UTC()}

	buf := make([]byte, MessageMUS.Size(msg))
	MessageMUS.Marshal(msg, buf)

	_, _, err := MessageMUS.Unmarshal(buf[:3])
	if err == nil {
		t.Error("Unmarshal of truncated buffer should fail")
	}
}
