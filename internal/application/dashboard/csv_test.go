package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"brightline/internal/domain/contact"
	"brightline/internal/domain/crm"
)

func TestDownloadCSV_HeaderAndRows(t *testing.T) {
	client := seededClient()
	c := NewController(client)
	_ = c.Fetch(context.Background(), TabContacts)

	name, data, err := c.DownloadCSV()
	if err != nil {
		t.Fatalf("DownloadCSV: %v", err)
	}
	if name != "contacts.csv" {
		t.Errorf("filename = %q, want contacts.csv", name)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "Name,Email,Phone,Created At,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("export has %d lines, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Alice,alice@example.com,5551110001,") {
		t.Errorf("row 1 = %q", lines[1])
	}
	// created_at is the display format, not RFC3339.
	if !strings.Contains(lines[1], "3/1/2026, 10:00:00 AM") {
		t.Errorf("row 1 missing display-formatted date: %q", lines[1])
	}
}

func TestDownloadCSV_ExportsVisibleRowsOnly(t *testing.T) {
	client := seededClient()
	c := NewController(client)
	_ = c.Fetch(context.Background(), TabContacts)

	c.Filter("alice")
	_, data, err := c.DownloadCSV()
	if err != nil {
		t.Fatalf("DownloadCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("filtered export has %d lines, want header + 1 row", len(lines))
	}
}

func TestDownloadCSV_CommaInNameMisalignsColumns(t *testing.T) {
	client := &fakeClient{contacts: []contact.Contact{
		{ID: 1, Name: "Smith, Jr.", Email: "smith@example.com", Phone: "5551110001",
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Status: crm.StatusNew},
		{ID: 2, Name: "Plain", Email: "plain@example.com", Phone: "5551110002",
			CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), Status: crm.StatusNew},
	}}
	c := NewController(client)
	_ = c.Fetch(context.Background(), TabContacts)

	_, data, err := c.DownloadCSV()
	if err != nil {
		t.Fatalf("DownloadCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	// The date format itself contains a comma, so a clean row splits into 6
	// cells; the name with an embedded comma shifts it to 7. This documents
	// the missing quoting rather than endorsing it.
	plain := strings.Split(lines[2], ",")
	shifted := strings.Split(lines[1], ",")
	if len(shifted) != len(plain)+1 {
		t.Errorf("comma in name produced %d cells vs %d for a clean row, want exactly one extra", len(shifted), len(plain))
	}
}

func TestDownloadCSV_NotAvailableOnBlogTab(t *testing.T) {
	c := NewController(seededClient())
	c.SetActiveTab(TabBlog)
	if _, _, err := c.DownloadCSV(); err == nil {
		t.Fatal("expected error exporting on blog tab")
	}
}
